// Package dependency provides a small directed acyclic graph describing which
// supervised service depends on which.
//
// The broker depends on the coordination service:
//
//	g := dependency.New()
//	g.AddNode(dependency.Node{ID: "zookeeper", Kind: dependency.KindCoordination})
//	g.AddNode(dependency.Node{ID: "kafka", Kind: dependency.KindBroker, DependsOn: []dependency.NodeID{"zookeeper"}})
//
//	start, _ := g.StartOrder() // zookeeper, kafka
//	stop, _ := g.StopOrder()   // kafka, zookeeper
//
// Unknown dependencies and cycles are reported by StartOrder and StopOrder.
// The graph is built once and read afterwards; it is not safe for concurrent
// writes.
package dependency
