package core

import (
	"fmt"
	"math/rand"
	"time"
)

// Semantic hints the generator derives from field names. The Fabricator
// maps each hint to a plausible value.
const (
	HintIPv4      = "ipv4"
	HintTimestamp = "timestamp"
	HintLatitude  = "latitude"
	HintLongitude = "longitude"
	HintPort      = "port"
	HintUsername  = "username"
	HintUserAgent = "useragent"
	HintProtocol  = "protocol"
	HintSeverity  = "severity"
	HintStatus    = "status"
	HintLevel     = "level"
	HintSentence  = "sentence"
	HintLocation  = "location"
	HintNumber    = "number"
	HintText      = "text"
)

// Fabricator produces a plausible value for a semantic hint. The engine's
// generation logic is deterministic apart from this capability, so tests
// substitute a fixed-sequence implementation.
type Fabricator interface {
	Fabricate(hint string) any
}

// randomFabricator is the default Fabricator: hand-rolled value pools and
// TEST-NET address ranges, randomized per call.
type randomFabricator struct {
	rand *rand.Rand
}

// NewFabricator creates the default randomized Fabricator.
func NewFabricator() Fabricator {
	return &randomFabricator{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededFabricator creates the default Fabricator with a fixed seed.
func NewSeededFabricator(seed int64) Fabricator {
	return &randomFabricator{rand: rand.New(rand.NewSource(seed))}
}

var (
	fabricatorUsernames = []string{
		"admin", "jdoe", "jsmith", "alice", "bob", "charlie",
		"dave", "svc_backup", "svc_monitor", "operator",
	}
	fabricatorUserAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
		"curl/8.5.0",
	}
	fabricatorProtocols  = []string{"TCP", "UDP", "ICMP"}
	fabricatorSeverities = []string{"Low", "Medium", "High", "Critical"}
	fabricatorStatuses   = []string{"Detected", "Clear", "Breached", "Secure", "Success", "Failure"}
	fabricatorLevels     = []string{"Low", "Medium", "High"}
	fabricatorLocations  = []string{
		"North Perimeter", "East Gate", "Warehouse Sector", "Restricted Zone",
		"Main Entrance", "Loading Dock", "Server Room", "Corridor B",
	}
	fabricatorWords = []string{
		"perimeter", "access", "policy", "anomalous", "gateway", "segment",
		"credential", "payload", "session", "beacon", "transfer", "endpoint",
	}
)

func (f *randomFabricator) Fabricate(hint string) any {
	switch hint {
	case HintIPv4:
		// TEST-NET and RFC1918 ranges only
		if f.rand.Intn(2) == 0 {
			return fmt.Sprintf("10.0.%d.%d", f.rand.Intn(255), f.rand.Intn(255))
		}
		return fmt.Sprintf("203.0.113.%d", f.rand.Intn(255))
	case HintTimestamp:
		offset := time.Duration(f.rand.Intn(300)+1) * time.Second
		return time.Now().UTC().Add(-offset).Format(time.RFC3339)
	case HintLatitude:
		return round6(f.rand.Float64()*180 - 90)
	case HintLongitude:
		return round6(f.rand.Float64()*360 - 180)
	case HintPort:
		ports := []int{22, 53, 80, 443, 3389, 8080}
		if f.rand.Intn(2) == 0 {
			return ports[f.rand.Intn(len(ports))]
		}
		return f.rand.Intn(64511) + 1024
	case HintUsername:
		return f.pick(fabricatorUsernames)
	case HintUserAgent:
		return f.pick(fabricatorUserAgents)
	case HintProtocol:
		return f.pick(fabricatorProtocols)
	case HintSeverity:
		return f.pick(fabricatorSeverities)
	case HintStatus:
		return f.pick(fabricatorStatuses)
	case HintLevel:
		return f.pick(fabricatorLevels)
	case HintSentence:
		n := 4 + f.rand.Intn(4)
		s := make([]byte, 0, 64)
		for i := 0; i < n; i++ {
			if i > 0 {
				s = append(s, ' ')
			}
			s = append(s, f.pick(fabricatorWords).(string)...)
		}
		return string(s)
	case HintLocation:
		return fmt.Sprintf("%s %d", f.pick(fabricatorLocations), f.rand.Intn(50)+1)
	case HintNumber:
		return round2(f.rand.Float64() * 100)
	default:
		return fmt.Sprintf("%s-%04d", f.pick(fabricatorWords), f.rand.Intn(10000))
	}
}

func (f *randomFabricator) pick(pool []string) any {
	return pool[f.rand.Intn(len(pool))]
}

func round2(v float64) float64 { return float64(int(v*100)) / 100 }
func round6(v float64) float64 { return float64(int(v*1e6)) / 1e6 }
