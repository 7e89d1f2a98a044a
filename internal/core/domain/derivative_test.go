package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/folio-site/folio/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivativeSet_String(t *testing.T) {
	set := domain.DerivativeSet{
		{Width: 400, Filename: "hasnur-1-400w.webp"},
		{Width: 800, Filename: "hasnur-1-800w.webp"},
	}

	assert.Equal(t, "hasnur-1-400w.webp 400w, hasnur-1-800w.webp 800w", set.String())
	assert.Empty(t, domain.DerivativeSet(nil).String())
}

func TestDerivativeSet_WithPrefix(t *testing.T) {
	set := domain.DerivativeSet{
		{Width: 400, Filename: "hasnur-1-400w.webp"},
		{Width: 800, Filename: "hasnur-1-800w.webp"},
	}

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{
			name: "RelativeDir",
			dir:  "commercial",
			want: "commercial/hasnur-1-400w.webp 400w, commercial/hasnur-1-800w.webp 800w",
		},
		{
			name: "TrailingSlash",
			dir:  "/assets/images/commercial/",
			want: "/assets/images/commercial/hasnur-1-400w.webp 400w, /assets/images/commercial/hasnur-1-800w.webp 800w",
		},
		{
			name: "NoDir",
			dir:  "",
			want: "hasnur-1-400w.webp 400w, hasnur-1-800w.webp 800w",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, set.WithPrefix(tt.dir))
		})
	}
}

func TestDerivativeSet_WithPrefixEscapesSeparators(t *testing.T) {
	set := domain.DerivativeSet{{Width: 400, Filename: "my photo,1-400w.jpg"}}

	assert.Equal(t, "a/my%20photo%2C1-400w.jpg 400w", set.WithPrefix("a"))
	assert.Equal(t, "my%20projects/a%20b-400w.jpg 400w", domain.DerivativeSet{{Width: 400, Filename: "a b-400w.jpg"}}.WithPrefix("my projects"))
	assert.Equal(t, "my%20projects/a%2Cb-800w.jpg", domain.Derivative{Width: 800, Filename: "a,b-800w.jpg"}.Path("my projects"))
}

func TestDerivativeSet_Pick(t *testing.T) {
	set := domain.DerivativeSet{
		{Width: 400, Filename: "a-400w.jpg"},
		{Width: 800, Filename: "a-800w.jpg"},
		{Width: 1200, Filename: "a-1200w.jpg"},
	}

	d, ok := set.Pick(800)
	require.True(t, ok)
	assert.Equal(t, "a-800w.jpg", d.Filename)

	d, ok = set.Pick(600)
	require.True(t, ok)
	assert.Equal(t, "a-800w.jpg", d.Filename)

	d, ok = set.Pick(5000)
	require.True(t, ok)
	assert.Equal(t, "a-1200w.jpg", d.Filename)

	_, ok = domain.DerivativeSet(nil).Pick(800)
	assert.False(t, ok)
}

func TestParseDerivativeSet(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.DerivativeSet
		wantErr bool
	}{
		{
			name: "Canonical",
			raw:  "a-400w.webp 400w, a-800w.webp 800w",
			want: domain.DerivativeSet{
				{Width: 400, Filename: "a-400w.webp"},
				{Width: 800, Filename: "a-800w.webp"},
			},
		},
		{
			name: "ExtraWhitespace",
			raw:  "  a-400w.webp   400w ,a-800w.webp 800w,  ",
			want: domain.DerivativeSet{
				{Width: 400, Filename: "a-400w.webp"},
				{Width: 800, Filename: "a-800w.webp"},
			},
		},
		{
			name: "CommaInName",
			raw:  "villa,pool-400w.jpg 400w, villa,pool-800w.jpg 800w",
			want: domain.DerivativeSet{
				{Width: 400, Filename: "villa,pool-400w.jpg"},
				{Width: 800, Filename: "villa,pool-800w.jpg"},
			},
		},
		{
			name: "SpaceInName",
			raw:  "my photo-400w.jpg 400w",
			want: domain.DerivativeSet{{Width: 400, Filename: "my photo-400w.jpg"}},
		},
		{
			name:    "MissingWidth",
			raw:     "a.jpg",
			wantErr: true,
		},
		{
			name: "SeparatorInName",
			raw:  "villa, pool-400w.jpg 400w, villa, pool-800w.jpg 800w",
			want: domain.DerivativeSet{
				{Width: 400, Filename: "villa, pool-400w.jpg"},
				{Width: 800, Filename: "villa, pool-800w.jpg"},
			},
		},
		{
			name:    "MissingWidthBeforeCandidate",
			raw:     "a.jpg 400w, b.jpg",
			wantErr: true,
		},
		{
			name:    "ZeroWidth",
			raw:     "a-0w.jpg 0w",
			wantErr: true,
		},
		{
			name: "Empty",
			raw:  "",
			want: nil,
		},
		{
			name:    "BadDescriptor",
			raw:     "a-400w.webp 2x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseDerivativeSet(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidSrcset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerivativeSet_JSON(t *testing.T) {
	set := domain.DerivativeSet{
		{Width: 400, Filename: "a-400w.jpg"},
		{Width: 800, Filename: "a-800w.jpg"},
	}

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `"a-400w.jpg 400w, a-800w.jpg 800w"`, string(data))

	var got domain.DerivativeSet
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, set, got)

	err = json.Unmarshal([]byte(`"a.jpg 1x"`), &got)
	assert.ErrorIs(t, err, domain.ErrInvalidSrcset)
}
