package notes_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/syncnotes/pkg/notes"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		token   string
		want    notes.Rating
		wantErr bool
	}{
		{"-1", notes.RatingNegative, false},
		{"0", notes.RatingNeutral, false},
		{"1", notes.RatingPositive, false},
		{" 1 ", notes.RatingPositive, false},
		{"Positive", notes.RatingPositive, false},
		{"negative", notes.RatingNegative, false},
		{"NEUTRAL", notes.RatingNeutral, false},
		{"NotFound", notes.RatingNone, false},
		{"2", notes.RatingNone, true},
		{"1.5", notes.RatingNone, true},
		{"", notes.RatingNone, true},
		{"good", notes.RatingNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := notes.ParseRating(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatingValue(t *testing.T) {
	v, ok := notes.RatingNegative.Value()
	assert.True(t, ok)
	assert.Equal(t, -1, v)

	_, ok = notes.RatingNone.Value()
	assert.False(t, ok)

	assert.Equal(t, "1", notes.RatingPositive.Token())
	assert.Equal(t, "NotFound", notes.RatingNone.Token())
	assert.False(t, notes.RatingNone.IsSet())
	assert.True(t, notes.RatingNeutral.IsSet())
}

func TestRatingText(t *testing.T) {
	b, err := json.Marshal(map[string]notes.Rating{"r": notes.RatingPositive})
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":"Positive"}`, string(b))

	var r notes.Rating
	require.NoError(t, r.UnmarshalText([]byte("-1")))
	assert.Equal(t, notes.RatingNegative, r)

	_, err = notes.Rating(42).MarshalText()
	assert.Error(t, err)
}

func TestNote(t *testing.T) {
	a := notes.New("Thrall", "tank", notes.RatingPositive)
	b := notes.New("Thrall", "tank", notes.RatingPositive)
	c := notes.New("Thrall", "tank", notes.RatingNone)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "rating is part of note content")
	assert.False(t, a.IsDeletion())
	assert.True(t, notes.New("Thrall", "[Delete]", notes.RatingNone).IsDeletion())
	assert.False(t, notes.New("Thrall", "[delete]", notes.RatingNone).IsDeletion(), "marker is exact")
	assert.Equal(t, `Thrall: "tank" (Positive)`, a.String())
	assert.Equal(t, `Thrall: "tank"`, c.String())
}

func TestRealm(t *testing.T) {
	r := notes.NewRealm("Silvermoon",
		notes.New("Thrall", "tank", notes.RatingNone),
		notes.New("Anduin", "healer", notes.RatingPositive),
		notes.New("Jaina", "mage", notes.RatingNeutral),
		notes.New("Anduin", "priest", notes.RatingPositive),
	)

	assert.Equal(t, []string{"Anduin", "Jaina", "Thrall"}, r.Players())
	assert.Equal(t, 3, r.Len())

	n, ok := r.Find("Anduin")
	require.True(t, ok)
	assert.Equal(t, "priest", n.Detail)

	_, ok = r.Find("Garrosh")
	assert.False(t, ok)

	var nilRealm *notes.Realm
	_, ok = nilRealm.Find("Thrall")
	assert.False(t, ok)
	assert.Zero(t, nilRealm.Len())
}
