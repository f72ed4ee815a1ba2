package cluster

import "context"

// OutlierID marks a document that fits no topic. Outliers are excluded
// from group creation.
const OutlierID = -1

// Document is the unit handed to the clustering capability.
type Document struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Assignment annotates a document with the cluster it landed in.
type Assignment struct {
	ID        string `json:"id"`
	ClusterID int    `json:"cluster_id"`
}

// Clusterizer groups documents by topic. Cluster returns one assignment
// per document, with ClusterID == OutlierID for documents that fit no
// topic. TopicLabels returns a human-readable name per cluster from the
// most recent Cluster call.
type Clusterizer interface {
	Cluster(ctx context.Context, docs []Document) ([]Assignment, error)
	TopicLabels(ctx context.Context) (map[int]string, error)
}
