package srv

import (
	"github.com/sakura-notes/sakura/pkg/cluster/bertopic"
)

type ClusterConfig struct {
	Endpoint string `toml:"endpoint"`
	Token    string `toml:"token"`
}

func ApplyCluster(cfg ClusterConfig) ApplyFunc {
	return func(s *Srv) {
		s.cluster = bertopic.New(cfg.Endpoint, cfg.Token)
	}
}
