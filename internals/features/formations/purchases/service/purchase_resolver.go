// file: internals/features/formations/purchases/service/purchase_resolver.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"kursusku_backend/internals/features/formations/purchases/model"
)

const (
	// harga pakai default ini kalau formation tidak memasang harga
	DefaultFormationPrice = 49.99

	// tujuan navigasi klien setelah pembelian sukses
	ExploreRedirect = "/explore"
)

var (
	ErrMustLogin        = errors.New("harus login untuk membeli")
	ErrAlreadyPurchased = errors.New("formasi sudah dibeli")
	ErrPurchaseInFlight = errors.New("pembelian sedang diproses")
)

// PurchaseResult adalah hasil pembelian sukses
type PurchaseResult struct {
	Purchase   *model.PurchasedFormationModel
	RedirectTo string
}

type inFlightKey struct {
	UserID      uuid.UUID
	FormationID uuid.UUID
}

// PurchaseResolver menjalankan alur beli:
// idle → purchasing → (success | already-purchased | error) → idle.
// Registry in-flight menjamin maksimal satu attempt berjalan per
// (user, formation) dalam proses ini; partial unique index di database
// menjaga race lintas device.
type PurchaseResolver struct {
	store PurchaseStore

	mu       sync.Mutex
	inFlight map[inFlightKey]struct{}
}

func NewPurchaseResolver(store PurchaseStore) *PurchaseResolver {
	return &PurchaseResolver{
		store:    store,
		inFlight: make(map[inFlightKey]struct{}),
	}
}

// begin menandai attempt berjalan; false kalau sudah ada yang berjalan
func (r *PurchaseResolver) begin(key inFlightKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[key]; busy {
		return false
	}
	r.inFlight[key] = struct{}{}
	return true
}

func (r *PurchaseResolver) end(key inFlightKey) {
	r.mu.Lock()
	delete(r.inFlight, key)
	r.mu.Unlock()
}

// Purchase menjalankan pembelian untuk (user, formation).
//
// Urutan langkah:
//  1. identitas wajib ada; tanpa login tidak ada satu pun akses store
//  2. guard in-flight (tap ganda → ErrPurchaseInFlight, store tidak disentuh)
//  3. ambil formation (harga + status terbit)
//  4. pre-check baris active yang sudah ada → ErrAlreadyPurchased
//  5. insert snapshot harga (harga formation, default 49.99 kalau NULL)
//  6. bentrok 23505 saat insert = kalah race → tetap ErrAlreadyPurchased
func (r *PurchaseResolver) Purchase(ctx context.Context, userID, formationID uuid.UUID) (*PurchaseResult, error) {
	if userID == uuid.Nil {
		return nil, ErrMustLogin
	}

	key := inFlightKey{UserID: userID, FormationID: formationID}
	if !r.begin(key) {
		return nil, ErrPurchaseInFlight
	}
	defer r.end(key)

	formation, err := r.store.FindFormation(ctx, formationID)
	if err != nil {
		return nil, err
	}
	if !formation.FormationIsPublished {
		return nil, ErrFormationNotFound
	}

	// pre-check supaya pesan "sudah dibeli" tidak perlu menunggu bentrok index
	has, err := r.store.HasActivePurchase(ctx, userID, formationID)
	if err != nil {
		return nil, fmt.Errorf("cek pembelian: %w", err)
	}
	if has {
		return nil, ErrAlreadyPurchased
	}

	price := DefaultFormationPrice
	if formation.FormationPrice != nil {
		price = *formation.FormationPrice
	}

	rec := &model.PurchasedFormationModel{
		PurchasedFormationUserID:      userID,
		PurchasedFormationFormationID: formationID,
		PurchasedFormationPrice:       price,
		PurchasedFormationStatus:      model.StatusActive,
	}
	if err := r.store.CreatePurchase(ctx, rec); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyPurchased
		}
		return nil, fmt.Errorf("simpan pembelian: %w", err)
	}

	return &PurchaseResult{Purchase: rec, RedirectTo: ExploreRedirect}, nil
}

// GrantPurchase membuat baris active langsung tanpa pre-check; dipakai
// webhook settlement. Bentrok index diperlakukan sebagai sudah-dibeli.
func (r *PurchaseResolver) GrantPurchase(ctx context.Context, userID, formationID uuid.UUID, price float64) (*model.PurchasedFormationModel, error) {
	rec := &model.PurchasedFormationModel{
		PurchasedFormationUserID:      userID,
		PurchasedFormationFormationID: formationID,
		PurchasedFormationPrice:       price,
		PurchasedFormationStatus:      model.StatusActive,
	}
	if err := r.store.CreatePurchase(ctx, rec); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyPurchased
		}
		return nil, err
	}
	return rec, nil
}

// isUniqueViolation mengenali SQLSTATE 23505 (unique_violation)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqlState interface{ SQLState() string }
	if errors.As(err, &sqlState) {
		return sqlState.SQLState() == "23505"
	}
	return false
}
