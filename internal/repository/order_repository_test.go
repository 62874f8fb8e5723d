package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type orderRepositorySuite struct {
	suite.Suite
	postgresFixture

	repo  port.OrderRepository
	users port.UserRepository
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	err := suite.start(ctx)
	suite.Require().NoError(err)

	suite.repo = repository.NewOrders(suite.pool)
	suite.users = repository.NewUsers(suite.pool)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	suite.stop()
}

func (suite *orderRepositorySuite) TestCreateOrder() {
	defer suite.deleteAll()

	user := suite.createUser()

	tests := []struct {
		name      string
		order     domain.Order
		wantError string
		wantKind  error
	}{
		{
			name:  "create order: ok",
			order: randomOrder(user.ID),
		},
		{
			name: "create order with empty order ID: error",
			order: func() domain.Order {
				o := randomOrder(user.ID)
				o.ID = uuid.Nil
				return o
			}(),
			wantError: "orderID is empty",
		},
		{
			name: "create order without items: error",
			order: func() domain.Order {
				o := randomOrder(user.ID)
				o.Items = nil
				return o
			}(),
			wantError: "order items are empty",
		},
		{
			name: "create order with quantity past int32: validation",
			order: func() domain.Order {
				o := randomOrder(user.ID)
				o.Items[0].Quantity = 1<<32 + 1
				return o
			}(),
			wantKind: domain.ErrValidation,
		},
		{
			name:     "create order for unknown user: validation",
			order:    randomOrder(uuid.New()),
			wantKind: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			created, err := suite.repo.CreateOrder(ctx, tt.order)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			if tt.wantKind != nil {
				require.ErrorIs(t, err, tt.wantKind)

				_, err := suite.repo.GetOrder(ctx, tt.order.ID)
				require.ErrorIs(t, err, domain.ErrNotFound)
				return
			}
			require.NoError(t, err)
			assertOrder(t, tt.order, created)

			got, err := suite.repo.GetOrder(ctx, tt.order.ID)
			require.NoError(t, err)
			assertOrder(t, tt.order, got)

			require.NotNil(t, got.Customer)
			assert.Equal(t, user.Name, got.Customer.Name)
			assert.Equal(t, user.Email, got.Customer.Email)
		})
	}
}

func (suite *orderRepositorySuite) TestGetOrder_NotFound() {
	_, err := suite.repo.GetOrder(suite.T().Context(), uuid.New())
	suite.Require().ErrorIs(err, domain.ErrNotFound)
}

func (suite *orderRepositorySuite) TestListOrders() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	alice, bob := suite.createUser(), suite.createUser()

	older := randomOrder(alice.ID)
	older.CreatedAt = time.Now().Add(-2 * time.Hour).UTC()
	older.UpdatedAt = older.CreatedAt
	newer := randomOrder(alice.ID)
	newer.CreatedAt = time.Now().Add(-time.Hour).UTC()
	newer.UpdatedAt = newer.CreatedAt
	other := randomOrder(bob.ID)

	for _, o := range []domain.Order{older, newer, other} {
		_, err := suite.repo.CreateOrder(ctx, o)
		require.NoError(t, err)
	}

	mine, err := suite.repo.ListOrdersByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assertOrder(t, newer, mine[0])
	assertOrder(t, older, mine[1])

	all, err := suite.repo.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := suite.repo.ListOrdersByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func (suite *orderRepositorySuite) TestUpdateOrderStatus() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	order, err := suite.repo.CreateOrder(ctx, randomOrder(user.ID))
	require.NoError(t, err)

	paid, _, err := order.Pay(domain.PaymentReceipt{
		ID:           uuid.NewString(),
		Status:       "COMPLETED",
		UpdateTime:   time.Now().Format(time.RFC3339),
		EmailAddress: user.Email,
	}, time.Now().UTC())
	require.NoError(t, err)

	updated, err := suite.repo.UpdateOrderStatus(ctx, paid, domain.OrderStatusCreated)
	require.NoError(t, err)
	assert.True(t, updated)

	// same transition again loses the conditional update
	updated, err = suite.repo.UpdateOrderStatus(ctx, paid, domain.OrderStatusCreated)
	require.NoError(t, err)
	assert.False(t, updated)

	got, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assertOrder(t, paid, got)
	require.NotNil(t, got.PaymentReceipt)
	assert.Equal(t, paid.PaymentReceipt.ID, got.PaymentReceipt.ID)

	delivered, _, err := got.Deliver(time.Now().UTC())
	require.NoError(t, err)

	updated, err = suite.repo.UpdateOrderStatus(ctx, delivered, domain.OrderStatusPaid)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err = suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)
}

func (suite *orderRepositorySuite) TestUpdateOrderStatus_TimestampsReadBackExactly() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	clock := port.UTCClock()

	user := suite.createUser()
	order := randomOrder(user.ID)
	order.CreatedAt = clock.Now()
	order.UpdatedAt = order.CreatedAt

	created, err := suite.repo.CreateOrder(ctx, order)
	require.NoError(t, err)
	assert.True(t, order.CreatedAt.Equal(created.CreatedAt), "createdAt %s read back as %s", order.CreatedAt, created.CreatedAt)

	paid, _, err := created.Pay(domain.PaymentReceipt{ID: uuid.NewString(), Status: "COMPLETED"}, clock.Now())
	require.NoError(t, err)

	updated, err := suite.repo.UpdateOrderStatus(ctx, paid, domain.OrderStatusCreated)
	require.NoError(t, err)
	require.True(t, updated)

	for range 2 {
		got, err := suite.repo.GetOrder(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got.PaidAt)
		assert.True(t, paid.PaidAt.Equal(*got.PaidAt), "paidAt %s read back as %s", paid.PaidAt, got.PaidAt)
		assert.True(t, paid.UpdatedAt.Equal(got.UpdatedAt), "updatedAt %s read back as %s", paid.UpdatedAt, got.UpdatedAt)
	}
}

func (suite *orderRepositorySuite) TestUpdateOrderStatus_RejectsIllegalState() {
	t := suite.T()

	order := randomOrder(uuid.New())
	order.Status = domain.OrderStatusDelivered

	_, err := suite.repo.UpdateOrderStatus(t.Context(), order, domain.OrderStatusPaid)
	require.Error(t, err)
}

func (suite *orderRepositorySuite) TestCreateOrder_JoinsOuterTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	user := suite.createUser()
	order := randomOrder(user.ID)

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	_, err = repository.NewOrdersWithTx(tx).CreateOrder(ctx, order)
	require.NoError(t, err)

	// visible inside the transaction only
	_, err = repository.NewOrdersWithTx(tx).GetOrder(ctx, order.ID)
	require.NoError(t, err)
	_, err = suite.repo.GetOrder(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, tx.Rollback(ctx))

	_, err = suite.repo.GetOrder(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *orderRepositorySuite) createUser() domain.User {
	user, err := suite.users.CreateUser(suite.T().Context(), randomUser())
	suite.Require().NoError(err)

	return user
}

func (suite *orderRepositorySuite) deleteAll() {
	err := suite.truncate(suite.T().Context())
	suite.NoError(err)
}
