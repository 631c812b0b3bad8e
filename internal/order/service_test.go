package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssanjae/offline-orders/internal/cart"
	"github.com/ssanjae/offline-orders/internal/confirm"
	"github.com/ssanjae/offline-orders/internal/order"
)

// memRepository is a slice-backed Repository, mirroring the whole-list
// read-modify-write behavior of the real store.
type memRepository struct {
	orders    []order.Order
	appendErr error
}

func (m *memRepository) List(ctx context.Context) ([]order.Order, error) {
	return append([]order.Order(nil), m.orders...), nil
}

func (m *memRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			o := m.orders[i]
			return &o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (m *memRepository) Append(ctx context.Context, o *order.Order) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.orders = append(m.orders, *o)
	return nil
}

func (m *memRepository) Update(ctx context.Context, o *order.Order) error {
	for i := range m.orders {
		if m.orders[i].ID == o.ID {
			m.orders[i] = *o
			return nil
		}
	}
	return order.ErrOrderNotFound
}

func (m *memRepository) Delete(ctx context.Context, id string) error {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return order.ErrOrderNotFound
}

type memDraftRepository struct {
	draft *cart.Draft
}

func (m *memDraftRepository) Load(ctx context.Context) (*cart.Draft, error) {
	return m.draft, nil
}

func (m *memDraftRepository) Save(ctx context.Context, draft *cart.Draft) error {
	m.draft = draft
	return nil
}

func (m *memDraftRepository) Clear(ctx context.Context) error {
	m.draft = nil
	return nil
}

func testDraft() *cart.Draft {
	return &cart.Draft{
		Items: []cart.Line{
			{ProductID: "p1", Name: "상하목장 마이리틀 유기농 짜먹는 요거트 플레인", Price: 890, Quantity: 2, LineTotal: 1780},
			{ProductID: "p3", Name: "따끈따끈 부산완당", Price: 3900, Quantity: 1, LineTotal: 3900},
		},
		TotalPrice: 5680,
		SavedAt:    time.Now().UTC(),
	}
}

func TestService_CreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		draft      *cart.Draft
		buyerName  string
		buyerPhone string
		memo       string
		wantErr    error
		wantErrMsg string
	}{
		{
			name:       "no_draft",
			draft:      nil,
			buyerName:  "이상재",
			buyerPhone: "01012345678",
			wantErr:    order.ErrEmptyDraft,
		},
		{
			name:       "empty_draft",
			draft:      &cart.Draft{},
			buyerName:  "이상재",
			buyerPhone: "01012345678",
			wantErr:    order.ErrEmptyDraft,
		},
		{
			name:       "empty_buyer_name",
			draft:      testDraft(),
			buyerName:  "   ",
			buyerPhone: "01012345678",
			wantErr:    order.ErrBuyerNameRequired,
			wantErrMsg: "enter buyer name",
		},
		{
			name:      "empty_buyer_phone",
			draft:     testDraft(),
			buyerName: "이상재",
			wantErr:   order.ErrBuyerPhoneRequired,
		},
		{
			name:       "successful_creation",
			draft:      testDraft(),
			buyerName:  "이상재",
			buyerPhone: "01012345678",
			memo:       "조금 늦을 것 같아요",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepository{}
			drafts := &memDraftRepository{draft: tt.draft}
			svc := order.NewService(repo, drafts)

			created, err := svc.CreateOrder(context.Background(), tt.buyerName, tt.buyerPhone, tt.memo)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				if tt.wantErrMsg != "" {
					assert.Equal(t, tt.wantErrMsg, err.Error())
				}
				// Validation failures perform no write.
				assert.Empty(t, repo.orders)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, created)
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, order.StatusPending, created.Status)
			assert.Len(t, repo.orders, 1)
			// Draft slot is consumed on success.
			assert.Nil(t, drafts.draft)
		})
	}
}

func TestService_CreateOrder_TotalMatchesItems(t *testing.T) {
	repo := &memRepository{}
	svc := order.NewService(repo, &memDraftRepository{draft: testDraft()})

	created, err := svc.CreateOrder(context.Background(), "이상재", "01012345678", "")
	require.NoError(t, err)

	total := 0
	for _, item := range created.Items {
		total += item.Price * item.Quantity
	}
	assert.Equal(t, total, created.TotalPrice)
	assert.Equal(t, 5680, created.TotalPrice)
}

func TestService_CreateOrder_BlankMemoBecomesDash(t *testing.T) {
	repo := &memRepository{}
	svc := order.NewService(repo, &memDraftRepository{draft: testDraft()})

	created, err := svc.CreateOrder(context.Background(), "이상재", "01012345678", "   ")
	require.NoError(t, err)
	assert.Equal(t, "-", created.Memo)
}

func TestService_SetStatus(t *testing.T) {
	tests := []struct {
		name       string
		from       order.Status
		to         order.Status
		confirmer  confirm.Confirmer
		wantStatus order.Status
		wantErr    error
	}{
		{name: "pending_to_paid", from: order.StatusPending, to: order.StatusPaid, confirmer: confirm.Never, wantStatus: order.StatusPaid},
		{name: "paid_back_to_pending", from: order.StatusPaid, to: order.StatusPending, confirmer: confirm.Never, wantStatus: order.StatusPending},
		{name: "pending_to_cancelled_confirmed", from: order.StatusPending, to: order.StatusCancelled, confirmer: confirm.Always, wantStatus: order.StatusCancelled},
		{name: "paid_to_cancelled_confirmed", from: order.StatusPaid, to: order.StatusCancelled, confirmer: confirm.Always, wantStatus: order.StatusCancelled},
		{name: "cancel_declined", from: order.StatusPending, to: order.StatusCancelled, confirmer: confirm.Never, wantErr: confirm.ErrDeclined},
		{name: "cancelled_is_terminal", from: order.StatusCancelled, to: order.StatusPaid, confirmer: confirm.Always, wantErr: order.ErrInvalidStatusTransition},
		{name: "cancelled_cannot_reopen", from: order.StatusCancelled, to: order.StatusPending, confirmer: confirm.Always, wantErr: order.ErrInvalidStatusTransition},
		{name: "unknown_status", from: order.StatusPending, to: order.Status("shipped"), confirmer: confirm.Always, wantErr: order.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepository{orders: []order.Order{{ID: "o1", BuyerName: "이상재", Status: tt.from}}}
			svc := order.NewService(repo, &memDraftRepository{})

			updated, err := svc.SetStatus(context.Background(), "o1", tt.to, tt.confirmer)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Equal(t, tt.from, repo.orders[0].Status, "status must not change on failure")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, updated.Status)
			assert.Equal(t, tt.wantStatus, repo.orders[0].Status)
		})
	}
}

func TestService_SetStatus_Idempotent(t *testing.T) {
	repo := &memRepository{orders: []order.Order{{ID: "o1", Status: order.StatusPending}}}
	svc := order.NewService(repo, &memDraftRepository{})

	once, err := svc.SetStatus(context.Background(), "o1", order.StatusPaid, confirm.Never)
	require.NoError(t, err)

	twice, err := svc.SetStatus(context.Background(), "o1", order.StatusPaid, confirm.Never)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(once, twice))
	assert.Equal(t, order.StatusPaid, repo.orders[0].Status)
}

func TestService_SetStatus_ToggleRestoresRecord(t *testing.T) {
	repo := &memRepository{}
	svc := order.NewService(repo, &memDraftRepository{draft: testDraft()})

	created, err := svc.CreateOrder(context.Background(), "이상재", "01012345678", "")
	require.NoError(t, err)
	original := repo.orders[0]

	_, err = svc.SetStatus(context.Background(), created.ID, order.StatusPaid, confirm.Never)
	require.NoError(t, err)
	_, err = svc.SetStatus(context.Background(), created.ID, order.StatusPending, confirm.Never)
	require.NoError(t, err)

	// Back-and-forth toggling touches nothing but the status field.
	assert.Empty(t, cmp.Diff(original, repo.orders[0]))
}

func TestService_SetStatus_NotFound(t *testing.T) {
	svc := order.NewService(&memRepository{}, &memDraftRepository{})

	_, err := svc.SetStatus(context.Background(), "missing", order.StatusPaid, confirm.Never)
	assert.True(t, errors.Is(err, order.ErrOrderNotFound))
}

func TestService_DeleteOrder(t *testing.T) {
	repo := &memRepository{orders: []order.Order{{ID: "o1", BuyerName: "이상재", Status: order.StatusPending}}}
	svc := order.NewService(repo, &memDraftRepository{})

	t.Run("declined", func(t *testing.T) {
		err := svc.DeleteOrder(context.Background(), "o1", confirm.Never)
		assert.True(t, errors.Is(err, confirm.ErrDeclined))
		assert.Len(t, repo.orders, 1)
	})

	t.Run("confirmed", func(t *testing.T) {
		err := svc.DeleteOrder(context.Background(), "o1", confirm.Always)
		require.NoError(t, err)
		assert.Empty(t, repo.orders)
	})

	t.Run("gone_for_all_subsequent_reads", func(t *testing.T) {
		_, err := svc.GetOrderByID(context.Background(), "o1")
		assert.True(t, errors.Is(err, order.ErrOrderNotFound))

		err = svc.DeleteOrder(context.Background(), "o1", confirm.Always)
		assert.True(t, errors.Is(err, order.ErrOrderNotFound))
	})
}
