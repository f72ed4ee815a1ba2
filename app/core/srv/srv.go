package srv

import (
	"github.com/sakura-notes/sakura/pkg/ai"
	"github.com/sakura-notes/sakura/pkg/cluster"
)

type AIDriver interface {
	ai.ChatAI
	ai.EmbeddingAI
}

type Srv struct {
	ai      *AI
	cluster cluster.Clusterizer
	limiter *LimiterSrv
}

type ApplyFunc func(*Srv)

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{}

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (s *Srv) AI() AIDriver {
	return s.ai
}

func (s *Srv) Cluster() cluster.Clusterizer {
	return s.cluster
}

func (s *Srv) Limiter() *LimiterSrv {
	return s.limiter
}
