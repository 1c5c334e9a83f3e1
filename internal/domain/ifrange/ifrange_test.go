package ifrange

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrabelo/edgesync/internal/util"
)

func TestExpand(t *testing.T) {
	for _, tt := range []struct {
		name    string
		token   string
		want    []string
		all     bool
		wantErr string
	}{
		{
			name:  "single interface",
			token: "0/1",
			want:  []string{"0/1"},
		},
		{
			name:  "range within group",
			token: "0/4-0/6",
			want:  []string{"0/4", "0/5", "0/6"},
		},
		{
			name:  "single element range",
			token: "3/2-3/2",
			want:  []string{"3/2"},
		},
		{
			name:  "surrounding spaces",
			token: " 0/7 ",
			want:  []string{"0/7"},
		},
		{
			name:  "wildcard",
			token: "all",
			all:   true,
		},
		{
			name:    "range across groups",
			token:   "0/4-1/6",
			wantErr: "interface range must be within same group: 0/4-1/6",
		},
		{
			name:    "descending range",
			token:   "0/6-0/4",
			wantErr: "interface range must be ascending: 0/6-0/4",
		},
		{
			name:    "vendor style name",
			token:   "eth1",
			wantErr: "wrong interface format: eth1",
		},
		{
			name:    "lag",
			token:   "lag 1",
			wantErr: "wrong interface format: lag 1",
		},
		{
			name:    "negative index",
			token:   "0/-1",
			wantErr: "wrong interface format: 0/-1",
		},
		{
			name:    "empty",
			token:   "",
			wantErr: "wrong interface format: ",
		},
		{
			name:    "index beyond limit",
			token:   "0/0-0/2147483647",
			wantErr: "interface index out of range: 0/0-0/2147483647",
		},
		{
			name:    "group beyond limit",
			token:   "4096/1",
			wantErr: "interface index out of range: 4096/1",
		},
		{
			name:  "largest range",
			token: "0/4094-0/4095",
			want:  []string{"0/4094", "0/4095"},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Expand(tt.token)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, util.ErrFormat))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.all, set.All())
			if !tt.all {
				assert.Equal(t, tt.want, set.Names())
			}
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("0/1-0/4095"))
	assert.NoError(t, Validate("all"))

	err := Validate("0/0-0/50000000")
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrFormat))
	assert.Equal(t, "interface index out of range: 0/0-0/50000000", err.Error())

	assert.EqualError(t, Validate("0/6-0/4"), "interface range must be ascending: 0/6-0/4")
}

func TestSetResolve(t *testing.T) {
	known := []string{"0/10", "0/2", "0/1"}

	set, err := Expand("all")
	require.NoError(t, err)
	assert.Equal(t, []string{"0/1", "0/2", "0/10"}, set.Resolve(known))
	assert.Equal(t, []string{"0/10", "0/2", "0/1"}, known, "known must not be reordered")

	set, err = Expand("0/2")
	require.NoError(t, err)
	assert.Equal(t, []string{"0/2"}, set.Resolve(known))
}

func TestExpandAll(t *testing.T) {
	got, err := ExpandAll([]string{"0/3", "0/1-0/4", "0/2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0/3", "0/1", "0/2", "0/4"}, got)

	_, err = ExpandAll([]string{"0/1", "bogus"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestCompareAndSort(t *testing.T) {
	names := []string{"0/10", "lag 2", "1/1", "0/9", "lag 10", "0/1"}
	Sort(names)
	assert.Equal(t, []string{"0/1", "0/9", "0/10", "1/1", "lag 2", "lag 10"}, names)

	assert.Zero(t, Compare("0/4", "0/4"))
	assert.Negative(t, Compare("0/4", "0/5"))
	assert.Positive(t, Compare("1/0", "0/48"))
}

func TestIsPhysical(t *testing.T) {
	assert.True(t, IsPhysical("0/1"))
	assert.False(t, IsPhysical("lag 1"))
	assert.False(t, IsPhysical("vlan 10"))
	assert.False(t, IsPhysical("all"))
}
