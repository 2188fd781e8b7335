package service

import (
	"fmt"

	"chedoparti/internal/gateway/core"
	"chedoparti/internal/gateway/flows"
	"chedoparti/pkg/client"
	"chedoparti/pkg/logger"
)

type GatewayService struct {
	client *client.Client
	log    *logger.Logger
}

func NewGatewayService(c *client.Client, log *logger.Logger) *GatewayService {
	return &GatewayService{
		client: c,
		log:    log,
	}
}

type FlowFunc func(ctx *core.FlowContext) error

var flowRegistry = map[string]FlowFunc{
	"create_reservation": flows.CreateReservation,
	"daily_agenda":       flows.DailyAgenda,
	"find_court_slots":   flows.FindCourtSlots,
	"match_card":         flows.MatchCard,
}

func (s *GatewayService) ExecuteFlow(flowName string, input map[string]any) (map[string]any, error) {
	flow, exists := flowRegistry[flowName]
	if !exists {
		return nil, fmt.Errorf("unknown flow: %s", flowName)
	}

	ctx := core.NewFlowContext(input, s.client, s.log)
	if err := flow(ctx); err != nil {
		return nil, fmt.Errorf("flow execution failed: %w", err)
	}
	return ctx.Output, nil
}

func (s *GatewayService) GetAvailableFlows() []string {
	names := make([]string, 0, len(flowRegistry))
	for name := range flowRegistry {
		names = append(names, name)
	}
	return names
}
