package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/platform/obs"
)

// ORSProvider resolves segments through the OpenRouteService directions API
// using the driving-hgv profile, which models weight and height restrictions
// the generic driving profile cannot. Used only for truck segments when an
// API key is configured.
type ORSProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSProvider(apiKey string) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-hgv",
	}, nil
}

type orsDirectionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
	Units        string      `json:"units"`
}

type orsDirectionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Steps []struct {
				Instruction string `json:"instruction"`
			} `json:"steps"`
		} `json:"segments"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// ResolveSegment requests turn-by-turn directions between two stops.
// Distances arrive in kilometers (units=km); durations in seconds.
func (o *ORSProvider) ResolveSegment(
	ctx context.Context,
	from, to domain.Stop,
	vehicle domain.VehicleType,
) (_ domain.Segment, err error) {
	defer obs.Time(ctx, "ors.ResolveSegment")(&err)

	if from.Coords == nil || to.Coords == nil {
		return domain.Segment{}, errors.New("ors directions: both stops must have coordinates")
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	payload, err := json.Marshal(orsDirectionsRequest{
		Coordinates: [][]float64{
			from.Coords.CoordsToList(),
			to.Coords.CoordsToList(),
		},
		Instructions: true,
		Units:        "km",
	})
	if err != nil {
		return domain.Segment{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", o.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.Segment{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded orsDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Segment{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return domain.Segment{}, errors.New("directions response contains no routes")
	}
	route := decoded.Routes[0]

	instructions := make([]string, 0)
	for _, seg := range route.Segments {
		for _, step := range seg.Steps {
			if step.Instruction != "" {
				instructions = append(instructions, step.Instruction)
			}
		}
	}

	return domain.Segment{
		From:         from,
		To:           to,
		DistanceKm:   route.Summary.Distance,
		DurationMin:  route.Summary.Duration / 60,
		Instructions: instructions,
		Geometry:     geo.DecodePolyline(route.Geometry),
	}, nil
}
