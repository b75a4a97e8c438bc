package resolve

import (
	"context"
	"math"
	"sort"

	"go.viam.com/cartesianpath/kinematics"
)

// roadmapNode is spec §3's nodes[k] = (waypointIndex, manifoldSlot).
type roadmapNode struct {
	waypoint int
	slot     int
	id       string // debug/DOT-export correlation only, SPEC_FULL.md domain stack
}

type roadmapEdge struct {
	i, j int
	traj *Trajectory
}

// Roadmap is the graph built by the roadmap resolver (spec §3, §4.F): a
// self-motion-manifold sample per waypoint, stitched by pointwise
// resolution between waypoints whenever two samples fall in different
// connected components.
type Roadmap struct {
	nodes     []roadmapNode
	configs   []kinematics.Configuration
	ccs       []int
	edges     []roadmapEdge
	manifolds [][]int // selfMotionManifolds[w] = node indices on waypoint w
}

func (r *Roadmap) union(i, j int) {
	src, tgt := r.ccs[i], r.ccs[j]
	if src == tgt {
		return
	}
	if src < tgt {
		src, tgt = tgt, src
	}
	for k := range r.ccs {
		if r.ccs[k] == src {
			r.ccs[k] = tgt
		}
	}
}

func (r *Roadmap) connected(i, j int) bool { return r.ccs[i] == r.ccs[j] }

// findpath BFS's forward from every waypoint-0 node along edges (which
// always point from a lower to a higher waypoint index, spec §9's
// equality-by-waypoint-index self-loop note) until it reaches a node on
// waypoint `depth`, then reconstructs the composed trajectory.
func (r *Roadmap) findpath(depth int) *Trajectory {
	adj := make([][]roadmapEdge, len(r.nodes))
	for _, e := range r.edges {
		adj[e.i] = append(adj[e.i], e)
	}
	parent := make([]int, len(r.nodes))
	parentEdge := make([]*roadmapEdge, len(r.nodes))
	for i := range parent {
		parent[i] = -1
	}
	queue := append([]int(nil), r.manifolds[0]...)
	visited := make(map[int]bool)
	for _, s := range queue {
		visited[s] = true
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range adj[cur] {
			next := e.j
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = cur
			edgeCopy := e
			parentEdge[next] = &edgeCopy
			if r.nodes[next].waypoint == depth {
				var chain []int
				n := next
				for n != -1 {
					chain = append([]int{n}, chain...)
					n = parent[n]
				}
				res := &Trajectory{Times: []float64{0}, Milestones: []kinematics.Configuration{r.configs[chain[0]]}}
				for k := 0; k < len(chain)-1; k++ {
					res.concat(parentEdge[chain[k+1]].traj)
				}
				return res
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// roadmap samples the self-motion manifold at discrete waypoints of a
// multi-segment Cartesian path and stitches a path through connected
// components when pointwise resolution fails (spec §4.F).
func roadmap(
	ctx context.Context,
	robot kinematics.Robot,
	waypoints []kinematics.WorkspacePoint,
	times []float64,
	startConfig, endConfig kinematics.Configuration,
	n *normalized,
	opt *Options,
) (*Trajectory, error) {
	log := opt.logger()
	waypoints, times = discretizePath(waypoints, times, n.constraints, opt.RoadmapDiscretization)
	W := len(waypoints)
	startMissing := startConfig == nil
	endMissing := endConfig == nil

	rng := opt.rng()
	clk := opt.clock()
	samp := 0

	// Endpoint seeding shares a single numSamples budget with the
	// sampling loop below (spec §4.F.1), unlike seedEndpoint's
	// independent budget used by the pointwise strategy, so it is
	// inlined here rather than calling seedEndpoint.
	if startMissing {
		for samp < opt.NumSamples {
			samp++
			n.solver.SampleInitial(rng)
			if solveAt(ctx, waypoints[0], n.constraints, n.solver) && opt.feasible(robot.GetConfig()) {
				startConfig = robot.GetConfig()
				break
			}
		}
	}
	if endMissing {
		for samp < opt.NumSamples {
			samp++
			n.solver.SampleInitial(rng)
			if solveAt(ctx, waypoints[W-1], n.constraints, n.solver) && opt.feasible(robot.GetConfig()) {
				endConfig = robot.GetConfig()
				break
			}
		}
	}
	if startConfig == nil || endConfig == nil {
		return nil, errAtWaypoint(SampleBudgetExhausted, 0, "exhausted all samples, perhaps endpoints are unreachable")
	}

	r := &Roadmap{manifolds: make([][]int, W)}
	r.manifolds[0] = append(r.manifolds[0], 0)
	r.nodes = append(r.nodes, roadmapNode{waypoint: 0, slot: 0, id: newNodeID()})
	r.configs = append(r.configs, startConfig)
	r.ccs = append(r.ccs, 0)
	r.manifolds[W-1] = append(r.manifolds[W-1], 1)
	r.nodes = append(r.nodes, roadmapNode{waypoint: W - 1, slot: 0, id: newNodeID()})
	r.configs = append(r.configs, endConfig)
	r.ccs = append(r.ccs, 1)

	pathIndices := make([]int, 0, W)
	for i := 1; i < W-1; i++ {
		pathIndices = append(pathIndices, i)
	}
	if startMissing {
		pathIndices = append([]int{0}, pathIndices...)
	}
	if endMissing {
		pathIndices = append(pathIndices, W-1)
	}
	if len(pathIndices) == 0 {
		// A two-waypoint path with both endpoints known has nothing left
		// to sample; the only possible connection is a direct pointwise
		// attempt between the two endpoints, which this resolver does not
		// make.
		return nil, errAtWaypoint(SampleBudgetExhausted, 0, "no intermediate waypoints to sample")
	}

	start := clk.Now()
	for ; samp < opt.NumSamples; samp++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w := pathIndices[rng.Intn(len(pathIndices))]
		n.solver.SampleInitial(rng)
		if !solveAt(ctx, waypoints[w], n.constraints, n.solver) {
			continue
		}
		x := robot.GetConfig()
		if !opt.feasible(x) {
			continue
		}

		nx := len(r.nodes)
		r.nodes = append(r.nodes, roadmapNode{waypoint: w, slot: len(r.manifolds[w]), id: newNodeID()})
		r.ccs = append(r.ccs, nx)
		r.manifolds[w] = append(r.manifolds[w], nx)
		r.configs = append(r.configs, x)

		k := int(math.Log(float64(samp+2))) + 2
		type cand struct {
			dist float64
			idx  int
		}
		var candidates []cand
		for i := 0; i < nx; i++ {
			if r.nodes[i].waypoint == w {
				continue // same self-motion manifold, spec §9 self-loop note
			}
			candidates = append(candidates, cand{dist: robot.Distance(x, r.configs[i]), idx: i})
		}
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].dist < candidates[b].dist })
		if k > len(candidates) {
			k = len(candidates)
		}

		for _, c := range candidates[:k] {
			i, j := nx, c.idx
			if r.connected(i, j) {
				continue // visibility-graph pruning
			}
			lo, hi := i, j
			if r.nodes[lo].waypoint > r.nodes[hi].waypoint {
				lo, hi = hi, lo
			}
			wi, wj := r.nodes[lo].waypoint, r.nodes[hi].waypoint
			sub := waypoints[wi : wj+1]
			subTimes := times[wi : wj+1]
			pw, err := pointwise(ctx, robot, sub, subTimes, r.configs[lo], r.configs[hi], n, opt)
			if err != nil {
				log.Debugw("roadmap failed to connect", "from", r.nodes[lo], "to", r.nodes[hi], "error", err)
				continue
			}
			log.Debugw("roadmap connected", "from", r.nodes[lo], "to", r.nodes[hi], "elapsed", clk.Since(start))
			r.edges = append(r.edges, roadmapEdge{i: lo, j: hi, traj: pw})
			r.union(lo, hi)

			for _, s0 := range r.manifolds[0] {
				connectedToGoal := false
				for _, sEnd := range r.manifolds[W-1] {
					if r.connected(s0, sEnd) {
						connectedToGoal = true
						break
					}
				}
				if connectedToGoal {
					if traj := r.findpath(W - 1); traj != nil {
						return traj, nil
					}
				}
			}
		}
	}

	if opt.Maximize {
		startCCs := map[int]bool{}
		for _, c := range r.manifolds[0] {
			startCCs[r.ccs[c]] = true
		}
		maxDepth := 0
		for i, cc := range r.ccs {
			if r.nodes[i].waypoint > maxDepth && startCCs[cc] {
				maxDepth = r.nodes[i].waypoint
			}
		}
		if traj := r.findpath(maxDepth); traj != nil {
			return traj, nil
		}
	}
	return nil, errAtWaypoint(SampleBudgetExhausted, 0, "unable to find a feasible path within %d samples", opt.NumSamples)
}
