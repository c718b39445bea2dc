package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// RouteStop is one delivery destination in a multi-stop plan.
type RouteStop struct {
	OrderID uint
	Address string
}

// RouteLeg is one sub-route of a delivery run. A leg can serve several
// orders when their addresses are close enough to share a stop.
type RouteLeg struct {
	OrderIDs    []uint `json:"order_ids"`
	Description string `json:"description"`
	Distance    string `json:"distance,omitempty"`
	Duration    string `json:"duration,omitempty"`
	MapURL      string `json:"map_url,omitempty"`
}

// RoutePlan is the result of planning a multi-stop delivery run.
type RoutePlan struct {
	Legs    []RouteLeg `json:"legs"`
	Summary string     `json:"summary"`
}

// RouteProvider generates best-effort route descriptions. Results are
// advisory text for the delivery person; a failing provider must never
// block a dispatch.
type RouteProvider interface {
	DescribeRoute(ctx context.Context, from, to string) (string, error)
	PlanMultiStopRoute(ctx context.Context, from string, stops []RouteStop) (*RoutePlan, error)
}

// StaticRouteProvider produces deterministic descriptions with a maps link.
// It stands in for an external route-generation call and never fails.
type StaticRouteProvider struct{}

func NewStaticRouteProvider() *StaticRouteProvider {
	return &StaticRouteProvider{}
}

func (p *StaticRouteProvider) DescribeRoute(_ context.Context, from, to string) (string, error) {
	if strings.TrimSpace(to) == "" {
		return "", nil
	}
	return fmt.Sprintf("Saia de %s e siga até %s. Rota: %s", from, to, mapsURL(from, to)), nil
}

func (p *StaticRouteProvider) PlanMultiStopRoute(_ context.Context, from string, stops []RouteStop) (*RoutePlan, error) {
	plan := &RoutePlan{}
	prev := from
	for i, stop := range stops {
		plan.Legs = append(plan.Legs, RouteLeg{
			OrderIDs:    []uint{stop.OrderID},
			Description: fmt.Sprintf("Parada %d: de %s até %s", i+1, prev, stop.Address),
			MapURL:      mapsURL(prev, stop.Address),
		})
		prev = stop.Address
	}
	plan.Summary = fmt.Sprintf("Rota com %d parada(s) partindo de %s", len(stops), from)
	return plan, nil
}

func mapsURL(from, to string) string {
	return "https://www.google.com/maps/dir/?api=1&origin=" +
		url.QueryEscape(from) + "&destination=" + url.QueryEscape(to)
}
