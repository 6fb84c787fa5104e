package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// OSRMProvider resolves segments through an OSRM route service with the
// generic driving profile. It knows nothing about vehicle restrictions;
// the resolver applies truck adjustment factors on top of its results.
type OSRMProvider struct {
	session *http.Client
	baseURL string
	profile string
}

func NewOSRMProvider(baseURL string) *OSRMProvider {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	return &OSRMProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
	}
}

type osrmRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Legs []struct {
			Steps []struct {
				Name     string `json:"name"`
				Maneuver struct {
					Type     string `json:"type"`
					Modifier string `json:"modifier"`
				} `json:"maneuver"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// ResolveSegment requests a route with full geojson geometry and step
// maneuvers. Distances arrive in meters, durations in seconds; both are
// converted to the domain units (km, minutes).
func (o *OSRMProvider) ResolveSegment(
	ctx context.Context,
	from, to domain.Stop,
	vehicle domain.VehicleType,
) (_ domain.Segment, err error) {
	defer obs.Time(ctx, "osrm.ResolveSegment")(&err)

	if from.Coords == nil || to.Coords == nil {
		return domain.Segment{}, errors.New("osrm route: both stops must have coordinates")
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson&steps=true",
		o.baseURL, o.profile,
		from.Coords.Lon, from.Coords.Lat,
		to.Coords.Lon, to.Coords.Lat,
	)

	resp, err := doWithRetry(ctx, o.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return domain.Segment{}, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Segment{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" {
		return domain.Segment{}, fmt.Errorf("route service returned code %q", decoded.Code)
	}
	if len(decoded.Routes) == 0 {
		return domain.Segment{}, errors.New("route response contains no routes")
	}
	route := decoded.Routes[0]

	instructions := make([]string, 0)
	for _, leg := range route.Legs {
		for _, step := range leg.Steps {
			instructions = append(instructions, describeManeuver(step.Maneuver.Type, step.Maneuver.Modifier, step.Name))
		}
	}

	return domain.Segment{
		From:         from,
		To:           to,
		DistanceKm:   route.Distance / 1000,
		DurationMin:  route.Duration / 60,
		Instructions: instructions,
		Geometry:     route.Geometry.Coordinates,
	}, nil
}

// describeManeuver renders an OSRM step maneuver as a plain instruction line.
func describeManeuver(maneuverType, modifier, road string) string {
	var b strings.Builder

	switch maneuverType {
	case "depart":
		b.WriteString("Depart")
	case "arrive":
		b.WriteString("Arrive at destination")
	default:
		text := strings.ReplaceAll(maneuverType, "-", " ")
		if text != "" {
			text = strings.ToUpper(text[:1]) + text[1:]
		}
		b.WriteString(text)
		if modifier != "" {
			b.WriteString(" ")
			b.WriteString(modifier)
		}
	}

	if road != "" && maneuverType != "arrive" {
		b.WriteString(" onto ")
		b.WriteString(road)
	}

	return b.String()
}
