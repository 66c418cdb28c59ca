package vacation_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vacation-engine/store/memory"
	"github.com/warp/vacation-engine/vacation"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T) (*vacation.Service, *memory.Memory) {
	t.Helper()
	store := memory.New()
	err := store.SaveEmployee(context.Background(), vacation.Employee{
		ID: "emp-1", FirstName: "Ada", LastName: "Moreau",
	})
	require.NoError(t, err)
	svc := vacation.NewService(store, store, zerolog.Nop())
	return svc, store
}

func ptrDate(d vacation.Date) *vacation.Date { return &d }

// =============================================================================
// CREATE TESTS
// =============================================================================

func TestService_Create_Standalone(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	v, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, 5, v.WorkDays)

	stored, err := store.GetVacation(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, *v, *stored)
}

func TestService_Create_UnknownEmployee_Rejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "emp-ghost",
		date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	assert.ErrorIs(t, err, vacation.ErrEmployeeNotFound)
}

func TestService_Create_StartAfterEnd_Rejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "emp-1",
		date(2025, time.June, 6), date(2025, time.June, 2), vacation.TypePaid)
	assert.ErrorIs(t, err, vacation.ErrInvalidRange)
}

func TestService_Create_WeekendOnly_NothingPersisted(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "emp-1", date(2025, time.June, 7), date(2025, time.June, 8), vacation.TypePaid)
	assert.ErrorIs(t, err, vacation.ErrNoWorkDays)

	all, err := store.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_Create_Duplicate_Idempotent(t *testing.T) {
	// GIVEN: A vacation on Jun 2-6
	// WHEN: Requesting the exact same range again
	// THEN: Rejected as existing, state unchanged

	svc, store := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	assert.ErrorIs(t, err, vacation.ErrVacationExists)

	all, err := store.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
}

func TestService_Create_BackToBack_MergePreservesSurvivorID(t *testing.T) {
	// GIVEN: A vacation Jun 2-6
	// WHEN: Requesting Jun 7-13, starting the day after the existing end
	// THEN: One record remains under the original id, spanning Jun 2-13

	svc, store := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)

	second, err := svc.Create(ctx, "emp-1", date(2025, time.June, 7), date(2025, time.June, 13), vacation.TypePaid)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "2025-06-02", second.Start.String())
	assert.Equal(t, "2025-06-13", second.End.String())
	assert.Equal(t, 10, second.WorkDays)

	all, err := store.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_Create_GapFill_ClosureInvariant(t *testing.T) {
	// GIVEN: Two disjoint vacations Jun 2-6 and Jun 9-13
	// WHEN: Filling the Jun 7-8 gap
	// THEN: Exactly one record remains covering the whole run

	svc, store := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "emp-1", date(2025, time.June, 10), date(2025, time.June, 13), vacation.TypePaid)
	require.NoError(t, err)

	merged, err := svc.Create(ctx, "emp-1", date(2025, time.June, 7), date(2025, time.June, 9), vacation.TypePaid)
	require.NoError(t, err)

	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, "2025-06-02", merged.Start.String())
	assert.Equal(t, "2025-06-13", merged.End.String())

	all, err := store.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 10, all[0].WorkDays)
}

func TestService_Create_Bridging_NothingChanges(t *testing.T) {
	// GIVEN: A paid vacation and an unpaid vacation with a gap between
	// WHEN: A request would connect them
	// THEN: Rejected; both originals are untouched

	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 4), vacation.TypePaid)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "emp-1", date(2025, time.June, 11), date(2025, time.June, 13), vacation.TypeUnpaid)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "emp-1", date(2025, time.June, 5), date(2025, time.June, 10), vacation.TypePaid)
	assert.ErrorIs(t, err, vacation.ErrBridgingTypes)

	all, err := store.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Create_DifferentEmployeesIndependent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	require.NoError(t, store.SaveEmployee(ctx, vacation.Employee{ID: "emp-2", FirstName: "Ben", LastName: "Okafor"}))

	_, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)
	v2, err := svc.Create(ctx, "emp-2", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)

	// No merge and no duplicate across employees.
	all, err := store.ListByEmployee(ctx, "emp-2")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, v2.ID, all[0].ID)
}

// =============================================================================
// EDIT TESTS
// =============================================================================

func TestService_Edit_MoveRange_RecomputesWorkdays(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)

	updated, err := svc.Edit(ctx, v.ID, vacation.Patch{
		Start: ptrDate(date(2025, time.June, 16)),
		End:   ptrDate(date(2025, time.June, 27)),
	})
	require.NoError(t, err)
	assert.Equal(t, v.ID, updated.ID)
	assert.Equal(t, "2025-06-16", updated.Start.String())
	assert.Equal(t, 10, updated.WorkDays)
}

func TestService_Edit_Unknown_Rejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Edit(context.Background(), "vac-ghost", vacation.Patch{})
	assert.ErrorIs(t, err, vacation.ErrVacationNotFound)
}

func TestService_Edit_PatchedRangeInverted_Rejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)

	_, err = svc.Edit(ctx, v.ID, vacation.Patch{Start: ptrDate(date(2025, time.June, 10))})
	assert.ErrorIs(t, err, vacation.ErrInvalidRange)
}

func TestService_Edit_ExcludesSelfFromInteractions(t *testing.T) {
	// GIVEN: A single vacation
	// WHEN: Editing it to overlap its own old bounds
	// THEN: No duplicate rejection; the record does not conflict with itself

	svc, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 13), vacation.TypePaid)
	require.NoError(t, err)

	updated, err := svc.Edit(ctx, v.ID, vacation.Patch{End: ptrDate(date(2025, time.June, 10))})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", updated.End.String())
}

func TestService_Edit_AbsorbsNeighbor(t *testing.T) {
	// GIVEN: Vacations Jun 2-6 and Jun 16-20
	// WHEN: Extending the first to Jun 15, the day before the second
	// THEN: The edited record survives, the neighbor is deleted

	svc, store := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 6), vacation.TypePaid)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "emp-1", date(2025, time.June, 16), date(2025, time.June, 20), vacation.TypePaid)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	updated, err := svc.Edit(ctx, first.ID, vacation.Patch{End: ptrDate(date(2025, time.June, 15))})
	require.NoError(t, err)

	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "2025-06-02", updated.Start.String())
	assert.Equal(t, "2025-06-20", updated.End.String())

	all, err := store.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)

	gone, err := store.GetVacation(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestService_Edit_Bridge_Rejected(t *testing.T) {
	// Widening a record until it connects two differently-typed runs is
	// rejected on the edit path just like on the create path.

	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "emp-1", date(2025, time.June, 2), date(2025, time.June, 4), vacation.TypePaid)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "emp-1", date(2025, time.June, 11), date(2025, time.June, 13), vacation.TypeUnpaid)
	require.NoError(t, err)
	// Jun 6-9 sits one clear day away from both neighbors, so it was
	// created standalone.
	middle, err := svc.Create(ctx, "emp-1", date(2025, time.June, 6), date(2025, time.June, 9), vacation.TypePaid)
	require.NoError(t, err)

	_, err = svc.Edit(ctx, middle.ID, vacation.Patch{
		Start: ptrDate(date(2025, time.June, 5)),
		End:   ptrDate(date(2025, time.June, 10)),
	})
	assert.ErrorIs(t, err, vacation.ErrBridgingTypes)

	all, err := store.ListByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
