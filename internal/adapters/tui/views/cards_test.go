package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"powerboard/internal/application"
	"powerboard/internal/domain"
)

type fakeProvider struct {
	set    domain.SnapshotSet
	ok     bool
	status string
}

func (f *fakeProvider) Status() string { return f.status }

func (f *fakeProvider) Snapshots() (domain.SnapshotSet, bool) { return f.set, f.ok }

type memOrderStore struct {
	order domain.DisplayOrder
}

func (s *memOrderStore) LoadDisplayOrder() (domain.DisplayOrder, error) { return s.order, nil }

func (s *memOrderStore) SaveDisplayOrder(order domain.DisplayOrder) error {
	s.order = order
	return nil
}

func (s *memOrderStore) ClearDisplayOrder() error {
	s.order = nil
	return nil
}

func testSet() domain.SnapshotSet {
	return domain.SnapshotSet{
		{ID: "a", Class: "Warlock", Light: 2010, ArtifactBonus: 5},
		{ID: "b", Class: "Hunter", Light: 1998},
		{ID: "c", Class: "Titan", Light: 2003},
	}
}

func newTestCards(t *testing.T) (*CardsModel, *application.Reconciler) {
	t.Helper()
	set := testSet()
	rec := application.NewReconciler(&memOrderStore{}, zap.NewNop())
	rec.SetSnapshots(set)
	provider := &fakeProvider{set: set, ok: true}
	return NewCardsModel(provider, rec), rec
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestCardsGrabAndDropSwaps(t *testing.T) {
	m, rec := newTestCards(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.Nil(t, cmd)
	assert.Equal(t, "a", rec.Dragging())

	_, _ = m.Update(keyRune('l'))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, cmd)

	msg, ok := cmd().(OrderChangedMsg)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a", "c"}, msg.Order)
	assert.Equal(t, domain.DisplayOrder{"b", "a", "c"}, rec.EffectiveOrder())
	assert.Empty(t, rec.Dragging())
}

func TestCardsDropOnSelfIsNoOp(t *testing.T) {
	m, rec := newTestCards(t)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})

	assert.Nil(t, cmd)
	assert.Empty(t, rec.Dragging())
	assert.Equal(t, domain.DisplayOrder{"a", "b", "c"}, rec.EffectiveOrder())
}

func TestCardsEscCancelsGrab(t *testing.T) {
	m, rec := newTestCards(t)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, "a", rec.Dragging())

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, rec.Dragging())
	assert.Equal(t, domain.DisplayOrder{"a", "b", "c"}, rec.EffectiveOrder())
}

func TestCardsResetEmitsOrderChanged(t *testing.T) {
	m, rec := newTestCards(t)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	_, _ = m.Update(keyRune('l'))
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, domain.DisplayOrder{"b", "a", "c"}, rec.EffectiveOrder())

	_, cmd := m.Update(keyRune('R'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(OrderChangedMsg)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, msg.Order)
}

func TestCardsRetryEmitsRetryAuth(t *testing.T) {
	m, _ := newTestCards(t)

	_, cmd := m.Update(keyRune('r'))
	require.NotNil(t, cmd)
	_, ok := cmd().(RetryAuthMsg)
	assert.True(t, ok)
}

func TestCardsCursorStaysInBounds(t *testing.T) {
	m, _ := newTestCards(t)

	for range 10 {
		_, _ = m.Update(keyRune('l'))
	}
	assert.Equal(t, 2, m.cursor)

	for range 10 {
		_, _ = m.Update(keyRune('h'))
	}
	assert.Equal(t, 0, m.cursor)
}

func TestCardsViewShowsStatusWhenEmpty(t *testing.T) {
	rec := application.NewReconciler(&memOrderStore{}, zap.NewNop())
	provider := &fakeProvider{status: "Authenticating..."}
	m := NewCardsModel(provider, rec)

	assert.Contains(t, m.View(), "Authenticating...")
}

func TestCardsViewShowsAggregates(t *testing.T) {
	m, _ := newTestCards(t)

	out := m.View()
	assert.Contains(t, out, "Power 2010")
	assert.Contains(t, out, "Artifact +5")
	assert.Contains(t, out, "Total 2015")
}
