package service

import (
	"context"
	"database/sql"
	"testing"

	"crmapi/internal/model"
	repoMocks "crmapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         *model.Order
		setupMocks func(mRepo *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository)
		wantErr    error
	}{
		{
			name: "happy path with default status",
			in:   &model.Order{CustomerID: 1, AmountCents: 2500},
			setupMocks: func(mRepo *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("FindByID", ctx, int64(1)).Return(&model.Customer{ID: 1}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(o *model.Order) bool {
					return o.Status == model.OrderStatusPending && o.AmountCents == 2500
				})).Return(&model.Order{ID: 1, CustomerID: 1, Status: model.OrderStatusPending}, nil)
			},
		},
		{
			name:       "invalid status",
			in:         &model.Order{CustomerID: 1, Status: "SHIPPED"},
			setupMocks: func(mRepo *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {},
			wantErr:    ErrInvalidStatus,
		},
		{
			name: "missing customer",
			in:   &model.Order{CustomerID: 404, AmountCents: 100},
			setupMocks: func(mRepo *repoMocks.MockOrderRepository, mCustomers *repoMocks.MockCustomerRepository) {
				mCustomers.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockOrderRepository)
			mCustomers := new(repoMocks.MockCustomerRepository)
			svc := NewOrderService(mRepo, mCustomers)

			tt.setupMocks(mRepo, mCustomers)

			o, err := svc.Create(ctx, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, o)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, o)
			}
			mRepo.AssertExpectations(t)
			mCustomers.AssertExpectations(t)
		})
	}
}

func TestOrderService_ListByCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockOrderRepository)
		mCustomers := new(repoMocks.MockCustomerRepository)
		svc := NewOrderService(mRepo, mCustomers)

		mCustomers.On("FindByID", ctx, int64(1)).Return(&model.Customer{ID: 1}, nil)
		mRepo.On("ListByCustomer", ctx, int64(1)).
			Return([]model.Order{{ID: 2}, {ID: 1}}, nil)

		orders, err := svc.ListByCustomer(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, orders, 2)
		mRepo.AssertExpectations(t)
		mCustomers.AssertExpectations(t)
	})

	t.Run("missing customer maps to not found", func(t *testing.T) {
		mCustomers := new(repoMocks.MockCustomerRepository)
		svc := NewOrderService(nil, mCustomers)

		mCustomers.On("FindByID", ctx, int64(404)).Return(nil, sql.ErrNoRows)

		_, err := svc.ListByCustomer(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
		mCustomers.AssertExpectations(t)
	})
}
