package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func fixture() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Buy milk", Description: "two litres", Priority: model.PriorityHigh, Status: model.StatusPending},
		{ID: "2", Title: "Clean house", Description: "buy mop", Priority: model.PriorityLow, Status: model.StatusCompleted},
		{ID: "3", Title: "Write report", Description: "Q3 numbers", Priority: model.PriorityHigh, Status: model.StatusCompleted},
		{ID: "4", Title: "Call plumber", Description: "leaky tap", Priority: model.PriorityMedium, Status: model.StatusPending},
		{ID: "5", Title: "BUY gifts", Description: "birthday", Priority: model.PriorityHigh, Status: model.StatusCompleted},
	}
}

func TestSearchMatchesTitleOrDescriptionIgnoringCase(t *testing.T) {
	got := Search(fixture(), "buy")
	assert.Equal(t, []string{"1", "2", "5"}, ids(got))

	got = Search(fixture(), "  TAP ")
	assert.Equal(t, []string{"4"}, ids(got))
}

func TestSearchBlankQueryIsIdentity(t *testing.T) {
	tasks := fixture()
	assert.Equal(t, tasks, Search(tasks, ""))
	assert.Equal(t, tasks, Search(tasks, " \t "))
}

func TestByStatus(t *testing.T) {
	assert.Len(t, ByStatus(fixture(), StatusAll), 5)
	assert.Equal(t, []string{"1", "4"}, ids(ByStatus(fixture(), StatusPending)))
	assert.Equal(t, []string{"2", "3", "5"}, ids(ByStatus(fixture(), StatusCompleted)))
}

func TestByPriority(t *testing.T) {
	assert.Len(t, ByPriority(fixture(), PriorityAll), 5)
	assert.Equal(t, []string{"1", "3", "5"}, ids(ByPriority(fixture(), PriorityHigh)))
	assert.Equal(t, []string{"4"}, ids(ByPriority(fixture(), PriorityMedium)))
	assert.Empty(t, ByPriority(fixture()[:1], PriorityLow))
}

func TestStatusAndPriorityFiltersCommute(t *testing.T) {
	a := ByPriority(ByStatus(fixture(), StatusCompleted), PriorityHigh)
	b := ByStatus(ByPriority(fixture(), PriorityHigh), StatusCompleted)
	assert.Equal(t, ids(a), ids(b))
	assert.Equal(t, []string{"3", "5"}, ids(a))
}

func TestApplyRunsSearchThenStatusThenPriority(t *testing.T) {
	got := Apply(fixture(), Criteria{Query: "buy", Status: StatusCompleted, Priority: PriorityHigh})
	assert.Equal(t, []string{"5"}, ids(got))

	got = Apply(fixture(), Criteria{Query: "buy", Status: StatusCompleted, Priority: PriorityAll})
	assert.Equal(t, []string{"2", "5"}, ids(got))

	got = Apply(fixture(), Criteria{Status: StatusAll, Priority: PriorityAll})
	assert.Len(t, got, 5)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	tasks := fixture()
	got := Apply(tasks, Criteria{Status: StatusAll, Priority: PriorityAll})
	got[0].Title = "changed"
	assert.Equal(t, "Buy milk", tasks[0].Title)
}

func TestParse(t *testing.T) {
	s, err := ParseStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	s, err = ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusAll, s)

	_, err = ParseStatus("archived")
	assert.Error(t, err)

	p, err := ParsePriority(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}
