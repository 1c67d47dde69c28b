package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeBuses() []Bus {
	return []Bus{
		{Number: 1, Role: RoleReference},
		{Number: 2, Role: RolePQ},
		{Number: 3, Role: RolePV},
	}
}

func TestParseBusRole(t *testing.T) {
	tests := []struct {
		tag  string
		want BusRole
	}{
		{"slack", RoleReference},
		{"SLACK", RoleReference},
		{"ref", RoleReference},
		{"3", RoleReference},
		{"pq", RolePQ},
		{"1", RolePQ},
		{" PV ", RolePV},
		{"isolated", RoleIsolated},
		{"", RoleUnset},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseBusRole(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseBusRole("swing-ish")
	require.ErrorIs(t, err, ErrUnknownBusType)
}

func TestBusRoleString(t *testing.T) {
	assert.Equal(t, SlackTag, RoleReference.String())
	assert.Equal(t, "unset", RoleUnset.String())
	assert.Equal(t, "BusRole(42)", BusRole(42).String())
	assert.True(t, Bus{Number: 1, Role: RoleReference}.IsReference())
	assert.Equal(t, "bus 4 (North)", Bus{Number: 4, Name: "North"}.String())
}

func TestBranchAccessors(t *testing.T) {
	line := &Line{ID: 1, From: 1, To: 2, X: 0.1, Rate: 100, Status: true}
	xf := &Transformer2W{ID: 2, From: 2, To: 3, X: 0.2, Tap: 1}
	xf3 := &Transformer3W{ID: 3, Buses: [3]int{1, 2, 3}, X: [3]float64{0.3, 0.4, 0.5}, Status: true}

	assert.Equal(t, KindLine, line.Kind())
	assert.Equal(t, 1.0, Status(line))
	assert.Equal(t, 0.0, Status(xf))
	assert.Equal(t, []int{1, 2, 3}, xf3.Terminals())
	assert.Equal(t, "transformer3w", xf3.Kind().String())

	from, to := FromTo(xf3)
	assert.Equal(t, 1, from)
	assert.Equal(t, 2, to)

	for _, tt := range []struct {
		branch Branch
		want   float64
	}{{line, 0.1}, {xf, 0.2}, {xf3, 0.3}} {
		x, err := SeriesReactance(tt.branch)
		require.NoError(t, err)
		assert.Equal(t, tt.want, x)
	}
}

func TestValidate(t *testing.T) {
	line := func(id, from, to int) Branch {
		return &Line{ID: id, From: from, To: to, R: 0.01, X: 0.1, Status: true}
	}

	tests := []struct {
		name     string
		busCount int
		buses    []Bus
		branches []Branch
		wantErr  error
	}{
		{
			name:     "valid",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{line(1, 1, 2), line(2, 2, 3)},
		},
		{
			name:     "no branches",
			busCount: 3,
			buses:    threeBuses(),
		},
		{
			name:     "zero bus count",
			busCount: 0,
			wantErr:  ErrBusCount,
		},
		{
			name:     "bus count mismatch",
			busCount: 4,
			buses:    threeBuses(),
			wantErr:  ErrBusCount,
		},
		{
			name:     "bus number gap",
			busCount: 3,
			buses:    []Bus{{Number: 1, Role: RolePQ}, {Number: 2, Role: RolePQ}, {Number: 4, Role: RolePQ}},
			wantErr:  ErrBusIndex,
		},
		{
			name:     "duplicate bus",
			busCount: 3,
			buses:    []Bus{{Number: 1, Role: RolePQ}, {Number: 2, Role: RolePQ}, {Number: 2, Role: RolePQ}},
			wantErr:  ErrDuplicateBus,
		},
		{
			name:     "missing bus type",
			busCount: 3,
			buses:    []Bus{{Number: 1, Role: RoleReference}, {Number: 2}, {Number: 3, Role: RolePQ}},
			wantErr:  ErrMissingBusType,
		},
		{
			name:     "terminal out of range",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{line(1, 1, 4)},
			wantErr:  ErrBusIndex,
		},
		{
			name:     "terminal zero",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{line(1, 0, 2)},
			wantErr:  ErrBusIndex,
		},
		{
			name:     "branch number out of range",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{line(1, 1, 2), line(3, 2, 3)},
			wantErr:  ErrBranchIndex,
		},
		{
			name:     "duplicate branch",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{line(1, 1, 2), line(1, 2, 3)},
			wantErr:  ErrDuplicateBranch,
		},
		{
			name:     "three-winding terminal out of range",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{&Transformer3W{ID: 1, Buses: [3]int{1, 2, 7}}},
			wantErr:  ErrBusIndex,
		},
		{
			name:     "branch terminals coincide",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{line(1, 1, 2), line(2, 2, 2)},
			wantErr:  ErrSelfLoop,
		},
		{
			name:     "three-winding repeated bus",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{&Transformer3W{ID: 1, Buses: [3]int{1, 2, 1}}},
			wantErr:  ErrSelfLoop,
		},
		{
			name:     "three-winding distinct buses",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{&Transformer3W{ID: 1, Buses: [3]int{3, 1, 2}}},
		},
		{
			name:     "nil branch",
			busCount: 3,
			buses:    threeBuses(),
			branches: []Branch{nil},
			wantErr:  ErrUnknownBranch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.busCount, tt.buses, tt.branches)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Kind: DiagNoReference, Message: "no reference bus"}
	assert.Equal(t, "no-reference-bus: no reference bus", d.String())
}
