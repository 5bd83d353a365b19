package services

import (
	"context"
	"encoding/json"

	"github.com/wellnest-app/wellnest-backend/internal/logger"
	"github.com/wellnest-app/wellnest-backend/internal/utils"
)

// SleepRelayService forwards Fitbit sleep payloads to the model
// service for analysis and pushes the analysis out over WhatsApp when
// a recipient is configured. The notification is best-effort; relay
// output is returned either way.
type SleepRelayService interface {
	Relay(ctx context.Context, sleepData interface{}) (json.RawMessage, error)
}

type sleepRelayService struct {
	log          *logger.Logger
	modelService ModelService
	textService  TextService
	notifyTo     string
}

func NewSleepRelayService(log *logger.Logger, modelService ModelService, textService TextService) SleepRelayService {
	serviceLog := log.With("service", "SleepRelayService")
	notifyTo := utils.GetEnv("SLEEP_ALERT_TO_NUMBER", "", log)
	if notifyTo == "" {
		serviceLog.Warn("SLEEP_ALERT_TO_NUMBER not set; sleep analyses will not be texted out")
	}
	return &sleepRelayService{
		log:          serviceLog,
		modelService: modelService,
		textService:  textService,
		notifyTo:     notifyTo,
	}
}

func (srs *sleepRelayService) Relay(ctx context.Context, sleepData interface{}) (json.RawMessage, error) {
	analysis, err := srs.modelService.ForwardSleepData(ctx, sleepData)
	if err != nil {
		return nil, err
	}

	if srs.textService != nil && srs.notifyTo != "" {
		if err := srs.textService.SendText(ctx, srs.notifyTo, "Sleep analysis: "+string(analysis)); err != nil {
			srs.log.Warn("failed to send sleep analysis text", "error", err)
		}
	}

	return analysis, nil
}
