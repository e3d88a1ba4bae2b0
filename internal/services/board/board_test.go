// File: internal/services/board/board_test.go
package board

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/salucare/triage-console/internal/domain"
    "github.com/salucare/triage-console/internal/logger"
)

type fakeBackend struct {
    handoffs []domain.Handoff
    err      error
}

func (b *fakeBackend) ListHandoffs(ctx context.Context) ([]domain.Handoff, error) {
    if b.err != nil {
        return nil, b.err
    }
    return b.handoffs, nil
}

func handoff(id, departmentID string, status domain.HandoffStatus) domain.Handoff {
    h := domain.Handoff{ID: id, SessionID: "s-" + id, Status: status}
    if departmentID != "" {
        h.Metadata = &domain.HandoffMetadata{DepartmentID: departmentID, DepartmentName: "Dep " + departmentID}
    }
    return h
}

func newTestBoard(t *testing.T, handoffs ...domain.Handoff) *Board {
    t.Helper()
    b := New(&fakeBackend{handoffs: handoffs}, &logger.NoOpLogger{})
    require.NoError(t, b.Refresh(context.Background()))
    return b
}

func TestFilteredByExactDepartment(t *testing.T) {
    b := newTestBoard(t,
        handoff("h1", "dep-a", domain.HandoffPending),
        handoff("h2", "dep-b", domain.HandoffPending),
        handoff("h3", "", domain.HandoffPending),
        handoff("h4", "dep-a", domain.HandoffInProgress),
    )

    assert.Len(t, b.Filtered(), 4, "no filter shows the full set")

    b.SetFilter("dep-a")
    filtered := b.Filtered()
    require.Len(t, filtered, 2)
    assert.Equal(t, "h1", filtered[0].ID)
    assert.Equal(t, "h4", filtered[1].ID)

    b.SetFilter("")
    assert.Len(t, b.Filtered(), 4)
}

func TestFilterChangeClearsSelection(t *testing.T) {
    b := newTestBoard(t,
        handoff("h1", "dep-a", domain.HandoffPending),
        handoff("h2", "dep-b", domain.HandoffPending),
    )

    require.NoError(t, b.Select("h1"))
    require.NotNil(t, b.Selected())

    b.SetFilter("dep-b")
    assert.Nil(t, b.Selected(), "changing the filter must clear the detail selection")
}

func TestSelectRejectsHandoffOutsideFilter(t *testing.T) {
    b := newTestBoard(t,
        handoff("h1", "dep-a", domain.HandoffPending),
        handoff("h2", "dep-b", domain.HandoffPending),
    )

    b.SetFilter("dep-a")
    assert.ErrorIs(t, b.Select("h2"), ErrNotInView)
    assert.ErrorIs(t, b.Select("missing"), ErrNotInView)
    require.NoError(t, b.Select("h1"))
    assert.Equal(t, "h1", b.Selected().ID)
}

func TestRefreshDropsVanishedSelection(t *testing.T) {
    api := &fakeBackend{handoffs: []domain.Handoff{
        handoff("h1", "dep-a", domain.HandoffPending),
        handoff("h2", "dep-a", domain.HandoffPending),
    }}
    b := New(api, &logger.NoOpLogger{})
    require.NoError(t, b.Refresh(context.Background()))
    require.NoError(t, b.Select("h1"))

    // h1 was resolved elsewhere and left the queue.
    api.handoffs = []domain.Handoff{handoff("h2", "dep-a", domain.HandoffPending)}
    require.NoError(t, b.Refresh(context.Background()))
    assert.Nil(t, b.Selected())

    // A surviving selection stays.
    require.NoError(t, b.Select("h2"))
    require.NoError(t, b.Refresh(context.Background()))
    require.NotNil(t, b.Selected())
    assert.Equal(t, "h2", b.Selected().ID)
}

func TestRefreshErrorKeepsQueue(t *testing.T) {
    api := &fakeBackend{handoffs: []domain.Handoff{handoff("h1", "dep-a", domain.HandoffPending)}}
    b := New(api, &logger.NoOpLogger{})
    require.NoError(t, b.Refresh(context.Background()))

    api.err = errors.New("backend down")
    require.Error(t, b.Refresh(context.Background()))
    assert.Len(t, b.Filtered(), 1)
}

func TestPendingCountHonorsFilter(t *testing.T) {
    b := newTestBoard(t,
        handoff("h1", "dep-a", domain.HandoffPending),
        handoff("h2", "dep-a", domain.HandoffInProgress),
        handoff("h3", "dep-b", domain.HandoffPending),
    )

    assert.Equal(t, 2, b.PendingCount())
    b.SetFilter("dep-a")
    assert.Equal(t, 1, b.PendingCount())
}

func TestDepartmentColorIsDeterministic(t *testing.T) {
    first := DepartmentColor("dep-guardia")
    for i := 0; i < 10; i++ {
        assert.Equal(t, first, DepartmentColor("dep-guardia"))
    }
    assert.Contains(t, departmentPalette, first)
    assert.Equal(t, unroutedBadge, DepartmentColor(""))
}

func TestDepartmentColorSumsByteValues(t *testing.T) {
    // "ab" and "ba" share a byte sum and must share a color.
    assert.Equal(t, DepartmentColor("ab"), DepartmentColor("ba"))
    // Ids one apart land on adjacent palette entries.
    assert.NotEqual(t, DepartmentColor("a"), DepartmentColor("b"))
}

func TestReasonAndPriorityLabels(t *testing.T) {
    assert.Equal(t, "Crisis Detectada", ReasonLabel(domain.ReasonCrisisDetected))
    assert.Equal(t, "Solicitud de Cita", ReasonLabel(domain.ReasonAppointmentRequest))
    assert.Equal(t, "SOME NEW REASON", ReasonLabel(domain.HandoffReason("SOME_NEW_REASON")))

    assert.Equal(t, "Urgente", PriorityLabel("URGENT"))
    assert.Equal(t, "Baja", PriorityLabel("LOW"))
    assert.Equal(t, "WHATEVER", PriorityLabel("WHATEVER"))
}

func TestFormatWaitTime(t *testing.T) {
    now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

    assert.Equal(t, "Ahora", FormatWaitTime(now.Add(-30*time.Second), now))
    assert.Equal(t, "5min", FormatWaitTime(now.Add(-5*time.Minute), now))
    assert.Equal(t, "59min", FormatWaitTime(now.Add(-59*time.Minute), now))
    assert.Equal(t, "1h", FormatWaitTime(now.Add(-61*time.Minute), now))
    assert.Equal(t, "23h", FormatWaitTime(now.Add(-23*time.Hour-30*time.Minute), now))
    assert.Equal(t, "2d", FormatWaitTime(now.Add(-49*time.Hour), now))
}

func TestDepartmentName(t *testing.T) {
    routed := handoff("h1", "dep-a", domain.HandoffPending)
    unrouted := handoff("h2", "", domain.HandoffPending)

    assert.Equal(t, "Dep dep-a", DepartmentName(&routed))
    assert.Equal(t, "Sin departamento", DepartmentName(&unrouted))
}
