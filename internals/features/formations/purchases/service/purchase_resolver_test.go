package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"kursusku_backend/internals/features/formations/purchases/model"
)

// fakeStore menghitung setiap akses supaya alur resolver bisa diperiksa
type fakeStore struct {
	mu sync.Mutex

	formation  *FormationInfo
	findErr    error
	hasActive  bool
	hasErr     error
	createErr  error
	createHook func() // dipanggil di dalam CreatePurchase (untuk memaksa overlap)

	findCalls   int
	hasCalls    int
	createCalls int
	created     []*model.PurchasedFormationModel
}

func (f *fakeStore) FindFormation(ctx context.Context, formationID uuid.UUID) (*FormationInfo, error) {
	f.mu.Lock()
	f.findCalls++
	f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.formation, nil
}

func (f *fakeStore) HasActivePurchase(ctx context.Context, userID, formationID uuid.UUID) (bool, error) {
	f.mu.Lock()
	f.hasCalls++
	f.mu.Unlock()
	if f.hasErr != nil {
		return false, f.hasErr
	}
	return f.hasActive, nil
}

func (f *fakeStore) CreatePurchase(ctx context.Context, rec *model.PurchasedFormationModel) error {
	f.mu.Lock()
	f.createCalls++
	hook := f.createHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	f.created = append(f.created, rec)
	f.mu.Unlock()
	return nil
}

func publishedFormation(id uuid.UUID, price *float64) *FormationInfo {
	return &FormationInfo{
		FormationID:          id,
		FormationPrice:       price,
		FormationIsPublished: true,
	}
}

func TestPurchaseRequiresLogin(t *testing.T) {
	store := &fakeStore{}
	r := NewPurchaseResolver(store)

	_, err := r.Purchase(context.Background(), uuid.Nil, uuid.New())
	if !errors.Is(err, ErrMustLogin) {
		t.Errorf("Expected ErrMustLogin, got %v", err)
	}

	// tanpa login, store tidak boleh disentuh sama sekali
	if store.findCalls != 0 || store.hasCalls != 0 || store.createCalls != 0 {
		t.Errorf("Expected zero store calls, got find=%d has=%d create=%d",
			store.findCalls, store.hasCalls, store.createCalls)
	}
}

func TestPurchaseFormationNotFound(t *testing.T) {
	store := &fakeStore{findErr: ErrFormationNotFound}
	r := NewPurchaseResolver(store)

	_, err := r.Purchase(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrFormationNotFound) {
		t.Errorf("Expected ErrFormationNotFound, got %v", err)
	}
	if store.createCalls != 0 {
		t.Errorf("Expected no insert, got %d", store.createCalls)
	}
}

func TestPurchaseUnpublishedFormation(t *testing.T) {
	formationID := uuid.New()
	info := publishedFormation(formationID, nil)
	info.FormationIsPublished = false
	store := &fakeStore{formation: info}
	r := NewPurchaseResolver(store)

	_, err := r.Purchase(context.Background(), uuid.New(), formationID)
	if !errors.Is(err, ErrFormationNotFound) {
		t.Errorf("Expected ErrFormationNotFound for unpublished, got %v", err)
	}
	if store.hasCalls != 0 || store.createCalls != 0 {
		t.Errorf("Expected no purchase checks for unpublished, got has=%d create=%d",
			store.hasCalls, store.createCalls)
	}
}

func TestPurchaseAlreadyPurchased(t *testing.T) {
	formationID := uuid.New()
	store := &fakeStore{
		formation: publishedFormation(formationID, nil),
		hasActive: true,
	}
	r := NewPurchaseResolver(store)

	_, err := r.Purchase(context.Background(), uuid.New(), formationID)
	if !errors.Is(err, ErrAlreadyPurchased) {
		t.Errorf("Expected ErrAlreadyPurchased, got %v", err)
	}

	// baris active sudah ada → tidak boleh ada insert kedua
	if store.createCalls != 0 {
		t.Errorf("Expected zero inserts, got %d", store.createCalls)
	}
}

func TestPurchaseDefaultPriceAndRedirect(t *testing.T) {
	userID := uuid.New()
	formationID := uuid.New()
	store := &fakeStore{formation: publishedFormation(formationID, nil)}
	r := NewPurchaseResolver(store)

	result, err := r.Purchase(context.Background(), userID, formationID)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	if result.Purchase.PurchasedFormationPrice != DefaultFormationPrice {
		t.Errorf("Expected price %v (default), got %v", DefaultFormationPrice, result.Purchase.PurchasedFormationPrice)
	}
	if result.Purchase.PurchasedFormationStatus != model.StatusActive {
		t.Errorf("Expected status %q, got %q", model.StatusActive, result.Purchase.PurchasedFormationStatus)
	}
	if result.Purchase.PurchasedFormationUserID != userID {
		t.Errorf("Expected user %v, got %v", userID, result.Purchase.PurchasedFormationUserID)
	}
	if result.RedirectTo != ExploreRedirect {
		t.Errorf("Expected redirect %q, got %q", ExploreRedirect, result.RedirectTo)
	}
	if store.createCalls != 1 {
		t.Errorf("Expected exactly one insert, got %d", store.createCalls)
	}
}

func TestPurchaseSnapshotsFormationPrice(t *testing.T) {
	formationID := uuid.New()
	price := 29.5
	store := &fakeStore{formation: publishedFormation(formationID, &price)}
	r := NewPurchaseResolver(store)

	result, err := r.Purchase(context.Background(), uuid.New(), formationID)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result.Purchase.PurchasedFormationPrice != 29.5 {
		t.Errorf("Expected price snapshot 29.5, got %v", result.Purchase.PurchasedFormationPrice)
	}
}

// error dengan SQLState() tanpa tipe pgconn, untuk jalur fallback
type sqlStateErr struct{ code string }

func (e sqlStateErr) Error() string    { return "duplicate key value violates unique constraint" }
func (e sqlStateErr) SQLState() string { return e.code }

func TestPurchaseUniqueViolationMeansAlreadyPurchased(t *testing.T) {
	formationID := uuid.New()

	// lewat tipe pgconn.PgError
	store := &fakeStore{
		formation: publishedFormation(formationID, nil),
		createErr: &pgconn.PgError{Code: "23505"},
	}
	r := NewPurchaseResolver(store)
	_, err := r.Purchase(context.Background(), uuid.New(), formationID)
	if !errors.Is(err, ErrAlreadyPurchased) {
		t.Errorf("Expected ErrAlreadyPurchased on 23505 (pgconn), got %v", err)
	}

	// lewat interface SQLState()
	store = &fakeStore{
		formation: publishedFormation(formationID, nil),
		createErr: sqlStateErr{code: "23505"},
	}
	r = NewPurchaseResolver(store)
	_, err = r.Purchase(context.Background(), uuid.New(), formationID)
	if !errors.Is(err, ErrAlreadyPurchased) {
		t.Errorf("Expected ErrAlreadyPurchased on 23505 (SQLState), got %v", err)
	}

	// error lain tetap error biasa
	store = &fakeStore{
		formation: publishedFormation(formationID, nil),
		createErr: errors.New("connection reset"),
	}
	r = NewPurchaseResolver(store)
	_, err = r.Purchase(context.Background(), uuid.New(), formationID)
	if err == nil || errors.Is(err, ErrAlreadyPurchased) {
		t.Errorf("Expected generic error, got %v", err)
	}
}

func TestPurchaseDoubleTapSingleMutation(t *testing.T) {
	userID := uuid.New()
	formationID := uuid.New()

	entered := make(chan struct{})
	release := make(chan struct{})
	store := &fakeStore{formation: publishedFormation(formationID, nil)}
	store.createHook = func() {
		close(entered)
		<-release
	}
	r := NewPurchaseResolver(store)

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = r.Purchase(context.Background(), userID, formationID)
	}()

	// tunggu attempt pertama masuk ke insert, lalu tap kedua
	<-entered
	_, secondErr := r.Purchase(context.Background(), userID, formationID)
	if !errors.Is(secondErr, ErrPurchaseInFlight) {
		t.Errorf("Expected ErrPurchaseInFlight on double tap, got %v", secondErr)
	}

	close(release)
	wg.Wait()

	if firstErr != nil {
		t.Errorf("Expected first attempt to succeed, got %v", firstErr)
	}
	if store.createCalls != 1 {
		t.Errorf("Expected at most one mutation, got %d", store.createCalls)
	}
}

func TestPurchaseClearsInFlightAfterFinish(t *testing.T) {
	store := &fakeStore{findErr: ErrFormationNotFound}
	r := NewPurchaseResolver(store)
	userID := uuid.New()
	formationID := uuid.New()

	// attempt pertama gagal; attempt kedua harus boleh jalan lagi
	_, err := r.Purchase(context.Background(), userID, formationID)
	if !errors.Is(err, ErrFormationNotFound) {
		t.Errorf("Expected ErrFormationNotFound, got %v", err)
	}
	_, err = r.Purchase(context.Background(), userID, formationID)
	if errors.Is(err, ErrPurchaseInFlight) {
		t.Errorf("Expected in-flight flag cleared, got ErrPurchaseInFlight")
	}
}

func TestGrantPurchase(t *testing.T) {
	userID := uuid.New()
	formationID := uuid.New()
	store := &fakeStore{}
	r := NewPurchaseResolver(store)

	rec, err := r.GrantPurchase(context.Background(), userID, formationID, 75000)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if rec.PurchasedFormationPrice != 75000 {
		t.Errorf("Expected price 75000, got %v", rec.PurchasedFormationPrice)
	}
	if rec.PurchasedFormationStatus != model.StatusActive {
		t.Errorf("Expected status %q, got %q", model.StatusActive, rec.PurchasedFormationStatus)
	}

	// bentrok index diperlakukan sebagai sudah-dibeli
	store = &fakeStore{createErr: &pgconn.PgError{Code: "23505"}}
	r = NewPurchaseResolver(store)
	_, err = r.GrantPurchase(context.Background(), userID, formationID, 75000)
	if !errors.Is(err, ErrAlreadyPurchased) {
		t.Errorf("Expected ErrAlreadyPurchased, got %v", err)
	}
}
