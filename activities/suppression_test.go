package activities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"inactivity-reminder/activities"
	"inactivity-reminder/shared"
)

func TestFilterSuppressed_DropsRecentlyNotified(t *testing.T) {
	suppression := &fakeSuppression{suppressed: map[string]bool{"u2": true}}
	env := newActivityEnv()
	a := &activities.Activities{Suppression: suppression}
	env.RegisterActivity(a.FilterSuppressed)

	val, err := env.ExecuteActivity(a.FilterSuppressed, shared.FilterRequest{
		Candidates: []shared.Candidate{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}},
	})
	require.NoError(t, err)

	var res shared.FilterResult
	require.NoError(t, val.Get(&res))

	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "u1", res.Candidates[0].ID)
	assert.Equal(t, "u3", res.Candidates[1].ID)
	assert.Equal(t, 1, res.Excluded)
}

func TestFilterSuppressed_EmptyInput(t *testing.T) {
	env := newActivityEnv()
	a := &activities.Activities{Suppression: &fakeSuppression{}}
	env.RegisterActivity(a.FilterSuppressed)

	val, err := env.ExecuteActivity(a.FilterSuppressed, shared.FilterRequest{})
	require.NoError(t, err)

	var res shared.FilterResult
	require.NoError(t, val.Get(&res))
	assert.Empty(t, res.Candidates)
	assert.Equal(t, 0, res.Excluded)
}

func TestFilterSuppressed_StoreFailureIsFatal(t *testing.T) {
	env := newActivityEnv()
	a := &activities.Activities{Suppression: &fakeSuppression{checkErr: assert.AnError}}
	env.RegisterActivity(a.FilterSuppressed)

	_, err := env.ExecuteActivity(a.FilterSuppressed, shared.FilterRequest{
		Candidates: []shared.Candidate{{ID: "u1"}},
	})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, shared.ErrTypeDataAccess, appErr.Type())
}
