package api

import "strings"

const (
	ClusterAmericas = "americas"
	ClusterEurope   = "europe"
	ClusterAsia     = "asia"
	ClusterSEA      = "sea"

	DefaultCluster = ClusterAmericas
)

var platformClusters = map[string]string{
	"na1":  ClusterAmericas,
	"br1":  ClusterAmericas,
	"la1":  ClusterAmericas,
	"la2":  ClusterAmericas,
	"euw1": ClusterEurope,
	"eun1": ClusterEurope,
	"tr1":  ClusterEurope,
	"ru":   ClusterEurope,
	"me1":  ClusterEurope,
	"kr":   ClusterAsia,
	"jp1":  ClusterAsia,
	"oc1":  ClusterSEA,
	"ph2":  ClusterSEA,
	"sg2":  ClusterSEA,
	"th2":  ClusterSEA,
	"tw2":  ClusterSEA,
	"vn2":  ClusterSEA,
}

// ClusterFor maps a platform shard to the continental cluster serving
// match-v5. Unknown shards route to DefaultCluster.
func ClusterFor(platform string) string {
	if cluster, ok := platformClusters[strings.ToLower(strings.TrimSpace(platform))]; ok {
		return cluster
	}
	return DefaultCluster
}

func Platforms() []string {
	platforms := make([]string, 0, len(platformClusters))
	for p := range platformClusters {
		platforms = append(platforms, p)
	}
	return platforms
}

func IsKnownPlatform(platform string) bool {
	_, ok := platformClusters[strings.ToLower(strings.TrimSpace(platform))]
	return ok
}
