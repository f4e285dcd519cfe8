package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_With(t *testing.T) {
	tests := []struct {
		name  string
		start State
		add   Source
		want  State
	}{
		{name: "empty + goodreads", start: StateEmpty, add: SourceGoodreads, want: StateNeedsStoryGraph},
		{name: "empty + storygraph", start: StateEmpty, add: SourceStoryGraph, want: StateNeedsGoodreads},
		{name: "goodreads + storygraph", start: StateNeedsStoryGraph, add: SourceStoryGraph, want: StateSolid},
		{name: "storygraph + goodreads", start: StateNeedsGoodreads, add: SourceGoodreads, want: StateSolid},
		{name: "same side again", start: StateNeedsStoryGraph, add: SourceGoodreads, want: StateNeedsStoryGraph},
		{name: "solid stays solid", start: StateSolid, add: SourceGoodreads, want: StateSolid},
		{name: "merged away is final", start: StateMergedAway, add: SourceGoodreads, want: StateMergedAway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.With(tt.add))
		})
	}
}

func TestState_SolidIffBothPresent(t *testing.T) {
	for state := range stateNames {
		both := state.Has(SourceGoodreads) && state.Has(SourceStoryGraph)
		assert.Equal(t, both, state.IsSolid(), "state %s", state)
	}
}

func TestState_Single(t *testing.T) {
	present, missing, ok := StateNeedsGoodreads.Single()
	require.True(t, ok)
	assert.Equal(t, SourceStoryGraph, present)
	assert.Equal(t, SourceGoodreads, missing)

	_, _, ok = StateSolid.Single()
	assert.False(t, ok)
	_, _, ok = StateMergedAway.Single()
	assert.False(t, ok)
}

func TestState_TextRoundTrip(t *testing.T) {
	data, err := json.Marshal(StateMergedAway)
	require.NoError(t, err)
	assert.JSONEq(t, `"merged-away"`, string(data))

	var s State
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, StateMergedAway, s)

	assert.Error(t, json.Unmarshal([]byte(`"half"`), &s))
}
