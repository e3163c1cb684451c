// Package graph wraps the gonum graph stack behind address-keyed helpers so
// the analysis engine never handles raw integer node ids. Node and edge
// iteration here is deterministic: nodes keep insertion order and successor
// lists are returned sorted.
package graph

import (
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

type Undirected struct {
	g     *simple.WeightedUndirectedGraph
	ids   map[string]int64
	addrs []string
	edges int
}

func NewUndirected() *Undirected {
	return &Undirected{
		g:   simple.NewWeightedUndirectedGraph(0, 0),
		ids: make(map[string]int64),
	}
}

func (u *Undirected) AddNode(addr string) {
	if _, ok := u.ids[addr]; ok {
		return
	}
	id := int64(len(u.addrs))
	u.ids[addr] = id
	u.addrs = append(u.addrs, addr)
	u.g.AddNode(simple.Node(id))
}

func (u *Undirected) SetEdge(a, b string, weight float64) {
	if a == b {
		return
	}
	u.AddNode(a)
	u.AddNode(b)
	f, t := u.ids[a], u.ids[b]
	if !u.g.HasEdgeBetween(f, t) {
		u.edges++
	}
	u.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(f), T: simple.Node(t), W: weight})
}

// Weight reports the edge weight between two distinct nodes, false if absent.
func (u *Undirected) Weight(a, b string) (float64, bool) {
	fid, ok := u.ids[a]
	if !ok {
		return 0, false
	}
	tid, ok := u.ids[b]
	if !ok || fid == tid {
		return 0, false
	}
	return u.g.Weight(fid, tid)
}

func (u *Undirected) NodeCount() int { return len(u.addrs) }
func (u *Undirected) EdgeCount() int { return u.edges }

func (u *Undirected) Nodes() []string {
	return append([]string(nil), u.addrs...)
}

// Communities partitions the graph with Louvain modularity maximization. The
// seed pins gonum's internal shuffling so identical graphs always produce
// identical partitions. Members are sorted, communities ordered by descending
// size then first member.
func (u *Undirected) Communities(resolution float64, seed uint64) [][]string {
	if len(u.addrs) == 0 {
		return nil
	}
	reduced := community.Modularize(u.g, resolution, rand.NewSource(seed))
	var out [][]string
	for _, comm := range reduced.Communities() {
		members := make([]string, 0, len(comm))
		for _, n := range comm {
			members = append(members, u.addrs[n.ID()])
		}
		sort.Strings(members)
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i][0] < out[j][0]
	})
	return out
}

type Directed struct {
	g     *simple.WeightedDirectedGraph
	ids   map[string]int64
	addrs []string
	out   map[string][]string
	in    map[string][]string
	w     map[string]map[string]float64
	edges int
}

func NewDirected() *Directed {
	return &Directed{
		g:   simple.NewWeightedDirectedGraph(0, 0),
		ids: make(map[string]int64),
		out: make(map[string][]string),
		in:  make(map[string][]string),
		w:   make(map[string]map[string]float64),
	}
}

func (d *Directed) AddNode(addr string) {
	if _, ok := d.ids[addr]; ok {
		return
	}
	id := int64(len(d.addrs))
	d.ids[addr] = id
	d.addrs = append(d.addrs, addr)
	d.g.AddNode(simple.Node(id))
}

// SetEdge adds or replaces the from->to edge. Self loops are dropped.
func (d *Directed) SetEdge(from, to string, weight float64) {
	if from == to {
		return
	}
	d.AddNode(from)
	d.AddNode(to)
	if _, ok := d.w[from]; !ok {
		d.w[from] = make(map[string]float64)
	}
	if _, exists := d.w[from][to]; !exists {
		d.out[from] = append(d.out[from], to)
		d.in[to] = append(d.in[to], from)
		d.edges++
	}
	d.w[from][to] = weight
	d.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(d.ids[from]), T: simple.Node(d.ids[to]), W: weight})
}

func (d *Directed) NodeCount() int { return len(d.addrs) }
func (d *Directed) EdgeCount() int { return d.edges }

func (d *Directed) Nodes() []string {
	return append([]string(nil), d.addrs...)
}

func (d *Directed) InDegree(addr string) int  { return len(d.in[addr]) }
func (d *Directed) OutDegree(addr string) int { return len(d.out[addr]) }

// Successors returns the out-neighbours of addr in sorted order.
func (d *Directed) Successors(addr string) []string {
	succ := append([]string(nil), d.out[addr]...)
	sort.Strings(succ)
	return succ
}

// IncomingWeight sums the weights of all edges pointing at addr.
func (d *Directed) IncomingWeight(addr string) float64 {
	var total float64
	for _, pred := range d.in[addr] {
		total += d.w[pred][addr]
	}
	return total
}

func (d *Directed) InDegreeCentrality() map[string]float64 {
	out := make(map[string]float64, len(d.addrs))
	n := len(d.addrs)
	if n < 2 {
		for _, addr := range d.addrs {
			out[addr] = 0
		}
		return out
	}
	for _, addr := range d.addrs {
		out[addr] = float64(len(d.in[addr])) / float64(n-1)
	}
	return out
}

// PageRank runs an edge-weighted power iteration. gonum's PageRank walks the
// adjacency structure without weights, so the iteration lives here where the
// weighted out-distribution is cheap to compute.
func (d *Directed) PageRank(damp, tol float64) map[string]float64 {
	n := len(d.addrs)
	if n == 0 || d.edges == 0 {
		return map[string]float64{}
	}
	rank := make(map[string]float64, n)
	for _, addr := range d.addrs {
		rank[addr] = 1 / float64(n)
	}
	for iter := 0; iter < 100; iter++ {
		next := make(map[string]float64, n)
		base := (1 - damp) / float64(n)
		var dangling float64
		for _, addr := range d.addrs {
			next[addr] = base
			if len(d.out[addr]) == 0 {
				dangling += rank[addr]
			}
		}
		for _, addr := range d.addrs {
			next[addr] += damp * dangling / float64(n)
		}
		for _, u := range d.addrs {
			succ := d.out[u]
			if len(succ) == 0 {
				continue
			}
			var outWeight float64
			for _, v := range succ {
				outWeight += d.w[u][v]
			}
			for _, v := range succ {
				share := 1 / float64(len(succ))
				if outWeight > 0 {
					share = d.w[u][v] / outWeight
				}
				next[v] += damp * rank[u] * share
			}
		}
		var delta float64
		for _, addr := range d.addrs {
			diff := next[addr] - rank[addr]
			if diff < 0 {
				diff = -diff
			}
			delta += diff
		}
		rank = next
		if delta < tol {
			break
		}
	}
	return rank
}

// Authority returns HITS authority scores, empty when the graph has no edges.
func (d *Directed) Authority(tol float64) map[string]float64 {
	if d.edges == 0 {
		return map[string]float64{}
	}
	scores := network.HITS(d.g, tol)
	out := make(map[string]float64, len(scores))
	for id, ha := range scores {
		out[d.addrs[id]] = ha.Authority
	}
	return out
}
