package game

// SpawnPoint is a fixed spawn location on the map.
type SpawnPoint struct {
	X, Y, Z float64
}

// spawnPoints mirrors the rooftop spawn pool the client map was built
// around: north ledge, south ledge, and mid-map positions.
var spawnPoints = []SpawnPoint{
	{X: -30, Y: 10, Z: 320},
	{X: -50, Y: 10, Z: 330},
	{X: 50, Y: 10, Z: 330},
	{X: -100, Y: 10, Z: 300},
	{X: 100, Y: 10, Z: 300},

	{X: -50, Y: 10, Z: -330},
	{X: 50, Y: 10, Z: -330},
	{X: -100, Y: 10, Z: -300},
	{X: 100, Y: 10, Z: -300},

	{X: -200, Y: 10, Z: 100},
	{X: 200, Y: 10, Z: -100},
	{X: -50, Y: 10, Z: 150},
	{X: -100, Y: 10, Z: -100},
	{X: 100, Y: 10, Z: 100},
}

// spawnPool hands out spawn points round-robin. Guarded by the hub mutex.
type spawnPool struct {
	points []SpawnPoint
	next   int
}

func newSpawnPool() *spawnPool {
	return &spawnPool{points: spawnPoints}
}

func (p *spawnPool) Next() SpawnPoint {
	point := p.points[p.next%len(p.points)]
	p.next++
	return point
}
