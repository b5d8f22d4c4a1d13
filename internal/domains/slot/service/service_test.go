package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rental/infras/otel/mocks"
	slotMocks "rental/internal/domains/slot/mocks"
	"rental/internal/domains/slot/model"
	"rental/internal/domains/slot/model/dto"
	"rental/internal/domains/slot/service"
	"rental/shared/clock"
	"rental/shared/failure"
	"rental/shared/principal"
	"rental/shared/timezone"
)

var serviceTime = time.Date(2026, 10, 14, 9, 0, 0, 0, timezone.GetLocation())

func TestAvailabilityService_Snapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	svc := service.New(mockRepo, slotMocks.NewMockHolders(ctrl), clock.NewMockClock(serviceTime), mocks.NewOtel())

	holder := "b-1"

	tests := []struct {
		name      string
		date      string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantDate  string
	}{
		{
			name: "empty date defaults to today",
			date: "",
			setupMock: func() {
				mockRepo.EXPECT().
					ListByVehicleDate(gomock.Any(), "bike-1", "2026-10-14").
					Return([]model.Slot{{SlotLabel: "10:00", Status: model.StatusUnavailable, BookingID: &holder}}, nil)
			},
			wantDate: "2026-10-14",
		},
		{
			name: "explicit date",
			date: "2026-10-20",
			setupMock: func() {
				mockRepo.EXPECT().
					ListByVehicleDate(gomock.Any(), "bike-1", "2026-10-20").
					Return(nil, nil)
			},
			wantDate: "2026-10-20",
		},
		{
			name:      "invalid date",
			date:      "20-10-2026",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			date: "2026-10-14",
			setupMock: func() {
				mockRepo.EXPECT().
					ListByVehicleDate(gomock.Any(), "bike-1", "2026-10-14").
					Return(nil, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Snapshot(context.Background(), "bike-1", tt.date)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, res.Date)
			assert.Equal(t, 9, res.TotalSlots)
		})
	}
}

func TestAvailabilityService_Override(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	mockHolders := slotMocks.NewMockHolders(ctrl)
	svc := service.New(mockRepo, mockHolders, clock.NewMockClock(serviceTime), mocks.NewOtel())

	holder := "b-1"
	heldSlot := model.Slot{SlotKey: "bike-1#2026-10-14#10:00", SlotLabel: "10:00", Status: model.StatusUnavailable, BookingID: &holder}
	keyAt := func(label string) model.Key {
		return model.Key{VehicleID: "bike-1", Date: "2026-10-14", Label: label}
	}

	admin := principal.WithContext(context.Background(), principal.Principal{ID: "admin-1", Role: principal.RoleAdmin})
	operator := principal.WithContext(context.Background(), principal.Principal{ID: "op-1", Role: principal.RoleOperator})

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.OverrideRequest
		setupMock func()
		wantErr   bool
		wantCode  int
		wantSlots []string
	}{
		{
			name: "admin blocks and frees slots",
			ctx:  admin,
			req: dto.OverrideRequest{
				Date: "2026-10-14",
				Updates: []dto.SlotUpdate{
					{Slot: "10:00", Status: "unavailable"},
					{Slot: "11:00", Status: "AVAILABLE", BookingID: "ignored"},
					{Slot: "12:00", Status: "RESERVED", BookingID: "b-7"},
				},
			},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Slot{}, nil).Times(3)
				gomock.InOrder(
					mockRepo.EXPECT().Override(gomock.Any(), gomock.Cond(func(s model.Slot) bool {
						return s.SlotKey == "bike-1#2026-10-14#10:00" && s.Status == model.StatusUnavailable && s.BookingID == nil && s.UpdatedBy == "admin-1"
					})).Return(nil),
					mockRepo.EXPECT().Override(gomock.Any(), gomock.Cond(func(s model.Slot) bool {
						return s.SlotLabel == "11:00" && s.Status == model.StatusAvailable && s.BookingID == nil
					})).Return(nil),
					mockRepo.EXPECT().Override(gomock.Any(), gomock.Cond(func(s model.Slot) bool {
						return s.SlotLabel == "12:00" && s.HeldBy("b-7")
					})).Return(nil),
				)
			},
			wantSlots: []string{"10:00:UNAVAILABLE", "11:00:AVAILABLE", "12:00:RESERVED"},
		},
		{
			name:      "operator forbidden",
			ctx:       operator,
			req:       dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "AVAILABLE"}}},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusForbidden,
		},
		{
			name: "invalid label rejected before any write",
			ctx:  admin,
			req:  dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "AVAILABLE"}, {Slot: "21:00", Status: "AVAILABLE"}}},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), keyAt("10:00")).Return(model.Slot{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "empty update list",
			ctx:       admin,
			req:       dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{}},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed date",
			ctx:       admin,
			req:       dto.OverrideRequest{Date: "14/10/2026", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "AVAILABLE"}}},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "unknown status",
			ctx:       admin,
			req:       dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "BROKEN"}}},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "slot held by a pending booking is refused",
			ctx:  admin,
			req:  dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "AVAILABLE"}}},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), keyAt("10:00")).Return(heldSlot, nil)
				mockHolders.EXPECT().HoldsSlot(gomock.Any(), "b-1").Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "reassigning a held slot is refused",
			ctx:  admin,
			req:  dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "RESERVED", BookingID: "b-2"}}},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), keyAt("10:00")).Return(heldSlot, nil)
				mockHolders.EXPECT().HoldsSlot(gomock.Any(), "b-1").Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "same holder may be reserved",
			ctx:  admin,
			req:  dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "RESERVED", BookingID: "b-1"}}},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), keyAt("10:00")).Return(heldSlot, nil)
				mockRepo.EXPECT().Override(gomock.Any(), gomock.Cond(func(s model.Slot) bool {
					return s.Status == model.StatusReserved && s.HeldBy("b-1")
				})).Return(nil)
			},
			wantSlots: []string{"10:00:RESERVED"},
		},
		{
			name: "slot of a finished booking is freed",
			ctx:  admin,
			req:  dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "AVAILABLE"}}},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), keyAt("10:00")).Return(heldSlot, nil)
				mockHolders.EXPECT().HoldsSlot(gomock.Any(), "b-1").Return(false, nil)
				mockRepo.EXPECT().Override(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantSlots: []string{"10:00:AVAILABLE"},
		},
		{
			name: "force skips the holder check",
			ctx:  admin,
			req:  dto.OverrideRequest{Date: "2026-10-14", Force: true, Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "AVAILABLE"}}},
			setupMock: func() {
				mockRepo.EXPECT().Override(gomock.Any(), gomock.Cond(func(s model.Slot) bool {
					return s.Status == model.StatusAvailable && s.BookingID == nil
				})).Return(nil)
			},
			wantSlots: []string{"10:00:AVAILABLE"},
		},
		{
			name: "holder lookup error",
			ctx:  admin,
			req:  dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "AVAILABLE"}}},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), keyAt("10:00")).Return(heldSlot, nil)
				mockHolders.EXPECT().HoldsSlot(gomock.Any(), "b-1").Return(false, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "repository error",
			ctx:  admin,
			req:  dto.OverrideRequest{Date: "2026-10-14", Updates: []dto.SlotUpdate{{Slot: "10:00", Status: "AVAILABLE"}}},
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), keyAt("10:00")).Return(model.Slot{}, nil)
				mockRepo.EXPECT().Override(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Override(tt.ctx, "bike-1", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSlots, res.UpdatedSlots)
			assert.Equal(t, "bike-1", res.VehicleID)
		})
	}
}

func TestAvailabilityService_Provision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := slotMocks.NewMockSlot(ctrl)
	svc := service.New(mockRepo, slotMocks.NewMockHolders(ctrl), clock.NewMockClock(serviceTime), mocks.NewOtel())

	gomock.InOrder(
		mockRepo.EXPECT().Provision(gomock.Any(), "bike-1", "2026-10-14", "system", serviceTime).Return(int64(9), nil),
		mockRepo.EXPECT().Provision(gomock.Any(), "bike-1", "2026-10-15", "system", serviceTime).Return(int64(0), nil),
	)

	created, err := svc.Provision(context.Background(), "bike-1", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(9), created)

	mockRepo.EXPECT().Provision(gomock.Any(), "a#b", "2026-10-14", "system", serviceTime).Return(int64(0), model.ErrInvalidKey)

	_, err = svc.Provision(context.Background(), "a#b", 1)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
