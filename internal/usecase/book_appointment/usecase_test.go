package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
	"github.com/m04kA/SMC-WebsiteService/internal/infra/mail"
	apptRepo "github.com/m04kA/SMC-WebsiteService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-WebsiteService/internal/service/notifier"
)

// fakeRepo in-memory репозиторий с семантикой уникального ограничения (date, time)
type fakeRepo struct {
	mu        sync.Mutex
	appts     map[string]*domain.Appointment
	nextID    int64
	createErr error
	getErr    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appts: make(map[string]*domain.Appointment)}
}

func slotKey(date, timeOfDay string) string {
	return date + "|" + timeOfDay
}

func (r *fakeRepo) GetBySlot(_ context.Context, date, timeOfDay string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return nil, r.getErr
	}
	if a, ok := r.appts[slotKey(date, timeOfDay)]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, apptRepo.ErrAppointmentNotFound
}

func (r *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}
	key := slotKey(appt.Date, appt.Time)
	if _, ok := r.appts[key]; ok {
		return nil, apptRepo.ErrSlotTaken
	}

	r.nextID++
	appt.ID = r.nextID
	appt.CreatedAt = time.Now()
	copied := *appt
	r.appts[key] = &copied
	return appt, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appts)
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct {
	err error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

// fakeNotifier записывает уведомления
type fakeNotifier struct {
	mu     sync.Mutex
	booked []*domain.Appointment
}

func (n *fakeNotifier) AppointmentBooked(a *domain.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.booked = append(n.booked, a)
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.booked)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		Name:    "Alice",
		Email:   "a@x.com",
		Date:    "2024-06-01",
		Time:    "10:00",
		Service: "Consult",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.Equal(t, "2024-06-01", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, "Consult", resp.Service)
	assert.Equal(t, 1, notifier.count())
}

func TestExecute_SameSlotTwice(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.Name = "Bob"
	second.Email = "b@x.com"

	_, err = uc.Execute(context.Background(), second)

	require.ErrorIs(t, err, ErrSlotTaken)
	// Ровно одна запись, уведомление только о первой
	assert.Equal(t, 1, repo.count())
	assert.Equal(t, 1, notifier.count())

	stored, err := repo.GetBySlot(context.Background(), "2024-06-01", "10:00")
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)
}

func TestExecute_DistinctSlotsDoNotConflict(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, noopLogger{})

	slots := []struct{ date, timeOfDay string }{
		{"2024-06-01", "10:00"},
		{"2024-06-01", "11:00"},
		{"2024-06-02", "10:00"},
	}

	for _, s := range slots {
		req := validRequest()
		req.Date = s.date
		req.Time = s.timeOfDay
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, repo.count())
	assert.Equal(t, 3, notifier.count())
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, noopLogger{})

	const attempts = 8
	results := make(chan error, attempts)

	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < attempts; i++ {
		go func() {
			start.Wait()
			_, err := uc.Execute(context.Background(), validRequest())
			results <- err
		}()
	}
	start.Done()

	var confirmed, conflicts int
	for i := 0; i < attempts; i++ {
		err := <-results
		switch {
		case err == nil:
			confirmed++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, confirmed)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, repo.count())
}

func TestExecute_ConstraintViolationFallback(t *testing.T) {
	// Гонка между проверкой и вставкой: предварительная проверка прошла,
	// но вставка уперлась в уникальное ограничение
	repo := newFakeRepo()
	repo.createErr = apptRepo.ErrSlotTaken
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 0, notifier.count())
}

func TestExecute_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"empty name", func(r *Request) { r.Name = "" }},
		{"empty email", func(r *Request) { r.Email = "" }},
		{"empty date", func(r *Request) { r.Date = "" }},
		{"empty time", func(r *Request) { r.Time = "" }},
		{"empty service", func(r *Request) { r.Service = "" }},
		{"blank name", func(r *Request) { r.Name = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			notifier := &fakeNotifier{}
			uc := NewUseCase(repo, notifier, &fakeTxManager{}, noopLogger{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, repo.count())
			assert.Equal(t, 0, notifier.count())
		})
	}
}

func TestExecute_ConfirmedDespiteUnreachableTransport(t *testing.T) {
	repo := newFakeRepo()
	// Настоящий notifier поверх транспорта, который всегда падает
	svc := notifier.NewService(failingSender{}, notifier.Config{AdminEmail: "admin@x.com"}, noopLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	uc := NewUseCase(repo, svc, &fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, 1, repo.count())
}

type failingSender struct{}

func (failingSender) Send(context.Context, mail.Message) error {
	return errors.New("smtp: connection refused")
}

func (failingSender) Name() string { return "failing" }

func TestExecute_StorageErrorKeepsCause(t *testing.T) {
	// Ошибка хранилища оборачивается в ErrInternal, но исходная причина
	// остается в цепочке: txmanager по ней распознает конфликт сериализации
	repo := newFakeRepo()
	cause := &pq.Error{Code: "40001"}
	repo.createErr = fmt.Errorf("%w: Create - execute insert: %w", apptRepo.ErrExecQuery, cause)
	uc := NewUseCase(repo, &fakeNotifier{}, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrInternal)
	require.ErrorIs(t, err, apptRepo.ErrExecQuery)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestExecute_StoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("connection refused")
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, notifier, &fakeTxManager{}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, notifier.count())
}
