package api

import "testing"

func TestClusterFor(t *testing.T) {
	tests := []struct {
		platform string
		want     string
	}{
		{"na1", ClusterAmericas},
		{"BR1", ClusterAmericas},
		{"euw1", ClusterEurope},
		{" tr1 ", ClusterEurope},
		{"kr", ClusterAsia},
		{"jp1", ClusterAsia},
		{"oc1", ClusterSEA},
		{"vn2", ClusterSEA},
		{"xx9", DefaultCluster},
		{"", DefaultCluster},
	}

	for _, tt := range tests {
		if got := ClusterFor(tt.platform); got != tt.want {
			t.Errorf("ClusterFor(%q) = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestEveryPlatformHasOneKnownCluster(t *testing.T) {
	known := map[string]bool{ClusterAmericas: true, ClusterEurope: true, ClusterAsia: true, ClusterSEA: true}

	for _, p := range Platforms() {
		if !known[ClusterFor(p)] {
			t.Errorf("platform %s maps to unknown cluster %s", p, ClusterFor(p))
		}
		if !IsKnownPlatform(p) {
			t.Errorf("IsKnownPlatform(%s) = false", p)
		}
	}
	if IsKnownPlatform("atlantis1") {
		t.Error("IsKnownPlatform(atlantis1) = true")
	}
}
