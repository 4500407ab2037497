package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AtheekAzmi/RoomReservationSystem/internal/domain"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/notifier"
	"github.com/AtheekAzmi/RoomReservationSystem/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) CreateConfirmed(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByNumber(ctx context.Context, number string) (*domain.Reservation, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByStatus(ctx context.Context, status domain.ReservationStatus) ([]domain.Reservation, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Update(ctx context.Context, res *domain.Reservation, roomStatus *domain.RoomStatus) error {
	args := m.Called(ctx, res, roomStatus)
	return args.Error(0)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, number string, status domain.ReservationStatus, roomStatus *domain.RoomStatus) error {
	args := m.Called(ctx, number, status, roomStatus)
	return args.Error(0)
}

type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockInventory) FindAvailable(ctx context.Context, roomType, checkin, checkout string) ([]domain.Room, error) {
	args := m.Called(ctx, roomType, checkin, checkout)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockInventory) SetStatus(ctx context.Context, roomID int64, status domain.RoomStatus) error {
	args := m.Called(ctx, roomID, status)
	return args.Error(0)
}

func (m *MockInventory) CurrentRate(ctx context.Context, roomID int64) (*domain.RoomRate, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoomRate), args.Error(1)
}

func (m *MockInventory) ValidType(roomType string) bool {
	args := m.Called(roomType)
	return args.Bool(0)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FindOrCreate(ctx context.Context, name, address, contact, email string) (*domain.Guest, error) {
	args := m.Called(ctx, name, address, contact, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Guest), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) AcquireRoomHold(ctx context.Context, roomID int64, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, roomID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) ReleaseRoomHold(ctx context.Context, roomID int64) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, eventType notifier.EventType, res domain.Reservation) {
	m.Called(ctx, eventType, res)
}

func futureDate(days int) string {
	return domain.Today().AddDate(0, 0, days).Format(domain.DateLayout)
}

func newTestService(repo *MockReservationRepository, inv *MockInventory, dir *MockDirectory, cache *MockCache, events *MockNotifier) *ReservationService {
	return &ReservationService{
		reservations:  repo,
		inventory:     inv,
		directory:     dir,
		cache:         cache,
		events:        events,
		holdTTL:       30 * time.Second,
		maxStayNights: 365,
	}
}

func TestReservationService_Create_Success(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockInv := &MockInventory{}
	mockDir := &MockDirectory{}
	mockCache := &MockCache{}
	mockEvents := &MockNotifier{}

	service := newTestService(mockRepo, mockInv, mockDir, mockCache, mockEvents)

	ctx := context.Background()
	checkin := futureDate(1)
	checkout := futureDate(5)
	input := CreateReservationInput{
		GuestName:     "John Silva",
		Address:       "12 Lake Road",
		ContactNumber: "0771234567",
		Email:         "john@example.com",
		RoomType:      "Deluxe",
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
		StaffID:       7,
	}

	rooms := []domain.Room{
		{ID: 3, RoomNumber: "103", TypeName: "Deluxe", Status: domain.RoomStatusAvailable},
		{ID: 9, RoomNumber: "205", TypeName: "Deluxe", Status: domain.RoomStatusAvailable},
	}
	guest := &domain.Guest{ID: 11, Name: "John Silva", ContactNumber: "0771234567"}

	mockInv.On("ValidType", "Deluxe").Return(true).Once()
	mockInv.On("FindAvailable", ctx, "Deluxe", checkin, checkout).Return(rooms, nil).Once()
	mockDir.On("FindOrCreate", ctx, "John Silva", "12 Lake Road", "0771234567", "john@example.com").Return(guest, nil).Once()
	mockCache.On("AcquireRoomHold", ctx, int64(3), 30*time.Second).Return(true, nil).Once()
	mockCache.On("ReleaseRoomHold", ctx, int64(3)).Return(nil).Once()
	mockRepo.On("CreateConfirmed", ctx, mock.AnythingOfType("*domain.Reservation")).Run(func(args mock.Arguments) {
		res := args.Get(1).(*domain.Reservation)
		res.ID = 42
		res.Status = domain.ReservationStatusConfirmed
	}).Return(nil).Once()
	mockEvents.On("Publish", ctx, notifier.EventCreated, mock.AnythingOfType("domain.Reservation")).Once()

	res, err := service.Create(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, res)
	// First room of the stable ordering wins.
	assert.Equal(t, int64(3), res.RoomID)
	assert.Equal(t, int64(11), res.GuestID)
	assert.Equal(t, int64(7), res.StaffID)
	assert.Equal(t, domain.ReservationStatusConfirmed, res.Status)
	assert.Regexp(t, `^RES-[0-9A-F]{8}$`, res.Number)

	mockRepo.AssertExpectations(t)
	mockInv.AssertExpectations(t)
	mockDir.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestReservationService_Create_ValidationErrors(t *testing.T) {
	mockInv := &MockInventory{}
	mockInv.On("ValidType", "Deluxe").Return(true)
	mockInv.On("ValidType", "Penthouse").Return(false)

	service := newTestService(&MockReservationRepository{}, mockInv, &MockDirectory{}, &MockCache{}, &MockNotifier{})
	service.maxStayNights = 30

	ctx := context.Background()

	testCases := []struct {
		name        string
		input       CreateReservationInput
		expectedErr string
	}{
		{
			name: "empty guest name",
			input: CreateReservationInput{
				GuestName:     "",
				ContactNumber: "0771234567",
				Email:         "john@example.com",
				RoomType:      "Deluxe",
				CheckinDate:   futureDate(1),
				CheckoutDate:  futureDate(3),
			},
			expectedErr: "guest name must be at least 2 characters",
		},
		{
			name: "bad contact number",
			input: CreateReservationInput{
				GuestName:     "John Silva",
				ContactNumber: "abc",
				Email:         "john@example.com",
				RoomType:      "Deluxe",
				CheckinDate:   futureDate(1),
				CheckoutDate:  futureDate(3),
			},
			expectedErr: "contact number",
		},
		{
			name: "bad email",
			input: CreateReservationInput{
				GuestName:     "John Silva",
				ContactNumber: "0771234567",
				Email:         "not-an-email",
				RoomType:      "Deluxe",
				CheckinDate:   futureDate(1),
				CheckoutDate:  futureDate(3),
			},
			expectedErr: "email",
		},
		{
			name: "check-in in the past",
			input: CreateReservationInput{
				GuestName:     "John Silva",
				ContactNumber: "0771234567",
				Email:         "john@example.com",
				RoomType:      "Deluxe",
				CheckinDate:   futureDate(-1),
				CheckoutDate:  futureDate(3),
			},
			expectedErr: "check-in date cannot be in the past",
		},
		{
			name: "checkout not after checkin",
			input: CreateReservationInput{
				GuestName:     "John Silva",
				ContactNumber: "0771234567",
				Email:         "john@example.com",
				RoomType:      "Deluxe",
				CheckinDate:   futureDate(3),
				CheckoutDate:  futureDate(3),
			},
			expectedErr: "check-out must be after check-in",
		},
		{
			name: "stay too long",
			input: CreateReservationInput{
				GuestName:     "John Silva",
				ContactNumber: "0771234567",
				Email:         "john@example.com",
				RoomType:      "Deluxe",
				CheckinDate:   futureDate(1),
				CheckoutDate:  futureDate(40),
			},
			expectedErr: "stay cannot exceed 30 nights",
		},
		{
			name: "unknown room type",
			input: CreateReservationInput{
				GuestName:     "John Silva",
				ContactNumber: "0771234567",
				Email:         "john@example.com",
				RoomType:      "Penthouse",
				CheckinDate:   futureDate(1),
				CheckoutDate:  futureDate(3),
			},
			expectedErr: "invalid room type",
		},
		{
			name: "malformed date",
			input: CreateReservationInput{
				GuestName:     "John Silva",
				ContactNumber: "0771234567",
				Email:         "john@example.com",
				RoomType:      "Deluxe",
				CheckinDate:   "01/09/2026",
				CheckoutDate:  futureDate(3),
			},
			expectedErr: "check-in date is invalid",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := service.Create(ctx, tc.input)
			assert.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, domain.IsValidation(err))
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestReservationService_Create_NoRoomsAvailable(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockInv := &MockInventory{}
	mockDir := &MockDirectory{}

	service := newTestService(mockRepo, mockInv, mockDir, &MockCache{}, &MockNotifier{})

	ctx := context.Background()
	checkin := futureDate(1)
	checkout := futureDate(3)

	mockInv.On("ValidType", "Suite").Return(true).Once()
	mockInv.On("FindAvailable", ctx, "Suite", checkin, checkout).Return([]domain.Room{}, nil).Once()

	res, err := service.Create(ctx, CreateReservationInput{
		GuestName:     "John Silva",
		ContactNumber: "0771234567",
		Email:         "john@example.com",
		RoomType:      "Suite",
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
	})

	assert.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "no rooms available")

	mockInv.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "CreateConfirmed")
	mockDir.AssertNotCalled(t, "FindOrCreate")
}

func TestReservationService_Create_RoomHeldByAnotherRequest(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockInv := &MockInventory{}
	mockDir := &MockDirectory{}
	mockCache := &MockCache{}

	service := newTestService(mockRepo, mockInv, mockDir, mockCache, &MockNotifier{})

	ctx := context.Background()
	checkin := futureDate(1)
	checkout := futureDate(3)
	rooms := []domain.Room{{ID: 5, RoomNumber: "105", TypeName: "Double"}}
	guest := &domain.Guest{ID: 2, Name: "John Silva"}

	mockInv.On("ValidType", "Double").Return(true).Once()
	mockInv.On("FindAvailable", ctx, "Double", checkin, checkout).Return(rooms, nil).Once()
	mockDir.On("FindOrCreate", ctx, "John Silva", "", "0771234567", "john@example.com").Return(guest, nil).Once()
	mockCache.On("AcquireRoomHold", ctx, int64(5), 30*time.Second).Return(false, nil).Once()

	res, err := service.Create(ctx, CreateReservationInput{
		GuestName:     "John Silva",
		ContactNumber: "0771234567",
		Email:         "john@example.com",
		RoomType:      "Double",
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
	})

	assert.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "room is being booked by another request")

	mockCache.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "ReleaseRoomHold")
	mockRepo.AssertNotCalled(t, "CreateConfirmed")
}

func TestReservationService_Create_RetriesOnNumberCollision(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockInv := &MockInventory{}
	mockDir := &MockDirectory{}
	mockCache := &MockCache{}
	mockEvents := &MockNotifier{}

	service := newTestService(mockRepo, mockInv, mockDir, mockCache, mockEvents)

	ctx := context.Background()
	checkin := futureDate(1)
	checkout := futureDate(3)
	rooms := []domain.Room{{ID: 5, RoomNumber: "105", TypeName: "Double"}}
	guest := &domain.Guest{ID: 2, Name: "John Silva"}

	mockInv.On("ValidType", "Double").Return(true).Once()
	mockInv.On("FindAvailable", ctx, "Double", checkin, checkout).Return(rooms, nil).Once()
	mockDir.On("FindOrCreate", ctx, "John Silva", "", "0771234567", "john@example.com").Return(guest, nil).Once()
	mockCache.On("AcquireRoomHold", ctx, int64(5), 30*time.Second).Return(true, nil).Once()
	mockCache.On("ReleaseRoomHold", ctx, int64(5)).Return(nil).Once()
	mockRepo.On("CreateConfirmed", ctx, mock.Anything).Return(repository.ErrNumberTaken).Once()
	mockRepo.On("CreateConfirmed", ctx, mock.Anything).Return(nil).Once()
	mockEvents.On("Publish", ctx, notifier.EventCreated, mock.Anything).Once()

	res, err := service.Create(ctx, CreateReservationInput{
		GuestName:     "John Silva",
		ContactNumber: "0771234567",
		Email:         "john@example.com",
		RoomType:      "Double",
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	mockRepo.AssertNumberOfCalls(t, "CreateConfirmed", 2)
	mockEvents.AssertExpectations(t)
}

func TestReservationService_Create_RepositoryConflict(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockInv := &MockInventory{}
	mockDir := &MockDirectory{}
	mockCache := &MockCache{}
	mockEvents := &MockNotifier{}

	service := newTestService(mockRepo, mockInv, mockDir, mockCache, mockEvents)

	ctx := context.Background()
	checkin := futureDate(1)
	checkout := futureDate(3)
	rooms := []domain.Room{{ID: 5, RoomNumber: "105", TypeName: "Double"}}
	guest := &domain.Guest{ID: 2, Name: "John Silva"}

	expectedErr := domain.Conflictf("room is no longer available")
	mockInv.On("ValidType", "Double").Return(true).Once()
	mockInv.On("FindAvailable", ctx, "Double", checkin, checkout).Return(rooms, nil).Once()
	mockDir.On("FindOrCreate", ctx, "John Silva", "", "0771234567", "john@example.com").Return(guest, nil).Once()
	mockCache.On("AcquireRoomHold", ctx, int64(5), 30*time.Second).Return(true, nil).Once()
	mockCache.On("ReleaseRoomHold", ctx, int64(5)).Return(nil).Once()
	mockRepo.On("CreateConfirmed", ctx, mock.Anything).Return(expectedErr).Once()

	res, err := service.Create(ctx, CreateReservationInput{
		GuestName:     "John Silva",
		ContactNumber: "0771234567",
		Email:         "john@example.com",
		RoomType:      "Double",
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
	})

	assert.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, expectedErr, err)

	mockCache.AssertExpectations(t)
	mockEvents.AssertNotCalled(t, "Publish")
}

func TestReservationService_Update_TerminalStatus(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	service := newTestService(mockRepo, &MockInventory{}, &MockDirectory{}, &MockCache{}, &MockNotifier{})

	ctx := context.Background()
	existing := &domain.Reservation{
		Number: "RES-AAAA1111",
		Status: domain.ReservationStatusCheckedOut,
	}
	mockRepo.On("GetByNumber", ctx, "RES-AAAA1111").Return(existing, nil).Once()

	status := string(domain.ReservationStatusCheckedIn)
	res, err := service.Update(ctx, "RES-AAAA1111", UpdateReservationInput{Status: &status})

	assert.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "cannot update a CHECKED_OUT reservation")

	mockRepo.AssertNotCalled(t, "Update")
}

func TestReservationService_Update_CheckinOccupiesRoom(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockEvents := &MockNotifier{}
	service := newTestService(mockRepo, &MockInventory{}, &MockDirectory{}, &MockCache{}, mockEvents)

	ctx := context.Background()
	existing := &domain.Reservation{
		Number:       "RES-AAAA1111",
		RoomID:       5,
		Status:       domain.ReservationStatusConfirmed,
		CheckinDate:  domain.Today().AddDate(0, 0, 1),
		CheckoutDate: domain.Today().AddDate(0, 0, 4),
	}

	occupied := domain.RoomStatusOccupied
	mockRepo.On("GetByNumber", ctx, "RES-AAAA1111").Return(existing, nil).Once()
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Reservation"), &occupied).Return(nil).Once()
	mockEvents.On("Publish", ctx, notifier.EventUpdated, mock.Anything).Once()

	status := string(domain.ReservationStatusCheckedIn)
	res, err := service.Update(ctx, "RES-AAAA1111", UpdateReservationInput{Status: &status})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, domain.ReservationStatusCheckedIn, res.Status)

	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestReservationService_Update_InvalidStatusValue(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	service := newTestService(mockRepo, &MockInventory{}, &MockDirectory{}, &MockCache{}, &MockNotifier{})

	ctx := context.Background()
	existing := &domain.Reservation{
		Number:       "RES-AAAA1111",
		Status:       domain.ReservationStatusConfirmed,
		CheckinDate:  domain.Today().AddDate(0, 0, 1),
		CheckoutDate: domain.Today().AddDate(0, 0, 4),
	}
	mockRepo.On("GetByNumber", ctx, "RES-AAAA1111").Return(existing, nil).Once()

	status := "SLEEPING"
	res, err := service.Update(ctx, "RES-AAAA1111", UpdateReservationInput{Status: &status})

	assert.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "invalid status value")
}

func TestReservationService_Update_DatePatchInvertsStay(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	service := newTestService(mockRepo, &MockInventory{}, &MockDirectory{}, &MockCache{}, &MockNotifier{})

	ctx := context.Background()
	existing := &domain.Reservation{
		Number:       "RES-AAAA1111",
		Status:       domain.ReservationStatusConfirmed,
		CheckinDate:  domain.Today().AddDate(0, 0, 5),
		CheckoutDate: domain.Today().AddDate(0, 0, 8),
	}
	mockRepo.On("GetByNumber", ctx, "RES-AAAA1111").Return(existing, nil).Once()

	// Checkout moved before the stored checkin.
	checkout := futureDate(2)
	res, err := service.Update(ctx, "RES-AAAA1111", UpdateReservationInput{CheckoutDate: &checkout})

	assert.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "check-out must be after check-in")

	mockRepo.AssertNotCalled(t, "Update")
}

func TestReservationService_Cancel_Success(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockEvents := &MockNotifier{}
	service := newTestService(mockRepo, &MockInventory{}, &MockDirectory{}, &MockCache{}, mockEvents)

	ctx := context.Background()
	existing := &domain.Reservation{
		Number: "RES-AAAA1111",
		RoomID: 5,
		Status: domain.ReservationStatusConfirmed,
	}

	available := domain.RoomStatusAvailable
	mockRepo.On("GetByNumber", ctx, "RES-AAAA1111").Return(existing, nil).Once()
	mockRepo.On("UpdateStatus", ctx, "RES-AAAA1111", domain.ReservationStatusCancelled, &available).Return(nil).Once()
	mockEvents.On("Publish", ctx, notifier.EventCancelled, mock.Anything).Once()

	err := service.Cancel(ctx, "RES-AAAA1111")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestReservationService_Cancel_CheckedOut(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	service := newTestService(mockRepo, &MockInventory{}, &MockDirectory{}, &MockCache{}, &MockNotifier{})

	ctx := context.Background()
	existing := &domain.Reservation{Number: "RES-AAAA1111", Status: domain.ReservationStatusCheckedOut}
	mockRepo.On("GetByNumber", ctx, "RES-AAAA1111").Return(existing, nil).Once()

	err := service.Cancel(ctx, "RES-AAAA1111")

	assert.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "cannot cancel a checked-out reservation")
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestReservationService_Cancel_AlreadyCancelled(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	service := newTestService(mockRepo, &MockInventory{}, &MockDirectory{}, &MockCache{}, &MockNotifier{})

	ctx := context.Background()
	existing := &domain.Reservation{Number: "RES-AAAA1111", Status: domain.ReservationStatusCancelled}
	mockRepo.On("GetByNumber", ctx, "RES-AAAA1111").Return(existing, nil).Once()

	err := service.Cancel(ctx, "RES-AAAA1111")

	assert.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	assert.Contains(t, err.Error(), "reservation is already cancelled")
	mockRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestReservationService_Cancel_NotFound(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	service := newTestService(mockRepo, &MockInventory{}, &MockDirectory{}, &MockCache{}, &MockNotifier{})

	ctx := context.Background()
	expectedErr := domain.NotFoundf("reservation not found: RES-MISSING1")
	mockRepo.On("GetByNumber", ctx, "RES-MISSING1").Return(nil, expectedErr).Once()

	err := service.Cancel(ctx, "RES-MISSING1")

	assert.Error(t, err)
	assert.Equal(t, expectedErr, err)
}

func TestReservationService_ListByStatus_InvalidStatus(t *testing.T) {
	service := newTestService(&MockReservationRepository{}, &MockInventory{}, &MockDirectory{}, &MockCache{}, &MockNotifier{})

	list, err := service.ListByStatus(context.Background(), "PENDING")

	assert.Error(t, err)
	assert.Nil(t, list)
	assert.True(t, domain.IsValidation(err))
}

func TestReservationService_Create_NoCache(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockInv := &MockInventory{}
	mockDir := &MockDirectory{}
	mockEvents := &MockNotifier{}

	service := &ReservationService{
		reservations:  mockRepo,
		inventory:     mockInv,
		directory:     mockDir,
		cache:         nil,
		events:        mockEvents,
		holdTTL:       30 * time.Second,
		maxStayNights: 365,
	}

	ctx := context.Background()
	checkin := futureDate(1)
	checkout := futureDate(3)
	rooms := []domain.Room{{ID: 5, RoomNumber: "105", TypeName: "Double"}}
	guest := &domain.Guest{ID: 2, Name: "John Silva"}

	mockInv.On("ValidType", "Double").Return(true).Once()
	mockInv.On("FindAvailable", ctx, "Double", checkin, checkout).Return(rooms, nil).Once()
	mockDir.On("FindOrCreate", ctx, "John Silva", "", "0771234567", "john@example.com").Return(guest, nil).Once()
	mockRepo.On("CreateConfirmed", ctx, mock.Anything).Return(nil).Once()
	mockEvents.On("Publish", ctx, notifier.EventCreated, mock.Anything).Once()

	res, err := service.Create(ctx, CreateReservationInput{
		GuestName:     "John Silva",
		ContactNumber: "0771234567",
		Email:         "john@example.com",
		RoomType:      "Double",
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
	mockRepo.AssertExpectations(t)
}

func TestReservationNumberFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := newReservationNumber()
		assert.Regexp(t, `^RES-[0-9A-F]{8}$`, n)
		seen[n] = true
	}
	// 100 draws from a 16^8 space should not collide.
	assert.Len(t, seen, 100)
}

func TestReservationService_Create_HoldError(t *testing.T) {
	mockRepo := &MockReservationRepository{}
	mockInv := &MockInventory{}
	mockDir := &MockDirectory{}
	mockCache := &MockCache{}

	service := newTestService(mockRepo, mockInv, mockDir, mockCache, &MockNotifier{})

	ctx := context.Background()
	checkin := futureDate(1)
	checkout := futureDate(3)
	rooms := []domain.Room{{ID: 5, RoomNumber: "105", TypeName: "Double"}}
	guest := &domain.Guest{ID: 2, Name: "John Silva"}

	mockInv.On("ValidType", "Double").Return(true).Once()
	mockInv.On("FindAvailable", ctx, "Double", checkin, checkout).Return(rooms, nil).Once()
	mockDir.On("FindOrCreate", ctx, "John Silva", "", "0771234567", "john@example.com").Return(guest, nil).Once()
	mockCache.On("AcquireRoomHold", ctx, int64(5), 30*time.Second).Return(false, errors.New("redis error")).Once()

	res, err := service.Create(ctx, CreateReservationInput{
		GuestName:     "John Silva",
		ContactNumber: "0771234567",
		Email:         "john@example.com",
		RoomType:      "Double",
		CheckinDate:   checkin,
		CheckoutDate:  checkout,
	})

	assert.Error(t, err)
	assert.Nil(t, res)
	mockRepo.AssertNotCalled(t, "CreateConfirmed")
}
