package cvrp_test

import (
	"slices"
	"testing"

	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requirePartition checks that groups cover every customer exactly once and
// never contain the depot.
func requirePartition(t *testing.T, inst *cvrp.Instance, groups [][]int) {
	t.Helper()
	var all []int
	for _, g := range groups {
		require.NotEmpty(t, g)
		require.True(t, slices.IsSorted(g), "%v", g)
		all = append(all, g...)
	}
	slices.Sort(all)
	want := make([]int, inst.CityAmount()-1)
	for i := range want {
		want[i] = i + 1
	}
	require.Equal(t, want, all)
}

func TestClusterKMeansPartition(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		inst := randomInstance(t, seed, 9)
		for _, k := range []int{1, 2, 3, 8, 20} {
			groups, err := cvrp.ClusterKMeans(inst, k, seed)
			require.NoError(t, err)
			requirePartition(t, inst, groups)
			assert.LessOrEqual(t, len(groups), min(k, 8))
			if k == 1 {
				assert.Len(t, groups, 1)
			}
		}
	}
}

func TestClusterKMeansDeterministic(t *testing.T) {
	inst := randomInstance(t, 7, 12)
	first, err := cvrp.ClusterKMeans(inst, 3, 42)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := cvrp.ClusterKMeans(inst, 3, 42)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}

	zero, err := cvrp.ClusterKMeans(inst, 3, 0)
	require.NoError(t, err)
	one, err := cvrp.ClusterKMeans(inst, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, one, zero)
}

func TestClusterKMeansSeparatedGroups(t *testing.T) {
	coords := [][]float64{
		{0, 0},
		{1000, 0}, {1001, 1}, {1000, 1},
		{0, 1000}, {1, 1001}, {0, 1001},
		{-1000, 0}, {-1001, -1}, {-1000, -1},
	}
	demand := []int{0, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	inst, err := cvrp.NewEuclideanInstance("blobs", coords, demand, 3)
	require.NoError(t, err)

	for seed := int64(1); seed <= 5; seed++ {
		groups, err := cvrp.ClusterKMeans(inst, 3, seed)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, groups, "seed %d", seed)
	}
}

func TestClusterKMeansDuplicatePoints(t *testing.T) {
	inst, err := cvrp.NewEuclideanInstance("stack",
		[][]float64{{0, 0}, {5, 5}, {5, 5}, {5, 5}},
		[]int{0, 1, 1, 1},
		3,
	)
	require.NoError(t, err)
	groups, err := cvrp.ClusterKMeans(inst, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}}, groups)
}

func TestClusterDispatch(t *testing.T) {
	inst := cvrp.DefaultInstance()

	byCapacity, err := cvrp.Cluster(inst, cvrp.MethodCapacity, 0, 0)
	require.NoError(t, err)
	want, err := cvrp.ClusterByCapacity(inst)
	require.NoError(t, err)
	assert.Equal(t, want, byCapacity)

	byKMeans, err := cvrp.Cluster(inst, cvrp.MethodKMeans, 2, 1)
	require.NoError(t, err)
	requirePartition(t, inst, byKMeans)

	_, err = cvrp.Cluster(inst, "spectral", 2, 1)
	require.ErrorIs(t, err, cvrp.ErrClusterMethod)
	_, err = cvrp.ClusterKMeans(inst, 0, 1)
	require.ErrorIs(t, err, cvrp.ErrClusterCount)

	noCoords := &cvrp.Instance{Name: "x", Dist: inst.Dist, Demand: inst.Demand, Capacity: inst.Capacity}
	_, err = cvrp.ClusterKMeans(noCoords, 2, 1)
	require.ErrorIs(t, err, cvrp.ErrNoCoords)
}
