package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/halvora/transaction-service/internal/domain"
	"github.com/halvora/transaction-service/internal/infrastructure/postgres/models"
)

func ToGORMEvent(event *domain.Event) (*models.TransactionEventModel, error) {
	payload, err := json.Marshal(event.Data)
	if err != nil {
		return nil, fmt.Errorf("marshaling event %s payload: %w", event.Code, err)
	}

	return &models.TransactionEventModel{
		ID:            event.ID,
		TransactionID: event.TransactionID,
		Code:          string(event.Code),
		CreationDate:  event.CreationDate,
		Data:          payload,
	}, nil
}

func ToDomainEvent(model *models.TransactionEventModel) (*domain.Event, error) {
	data, err := unmarshalEventData(domain.EventCode(model.Code), model.Data)
	if err != nil {
		return nil, err
	}

	return &domain.Event{
		ID:            model.ID,
		TransactionID: model.TransactionID,
		Code:          domain.EventCode(model.Code),
		CreationDate:  model.CreationDate,
		Data:          data,
	}, nil
}

// unmarshalEventData restores the payload variant matching the event code.
func unmarshalEventData(code domain.EventCode, raw []byte) (domain.EventData, error) {
	var data domain.EventData
	switch code {
	case domain.EventActivated:
		data = &domain.ActivatedData{}
	case domain.EventAuthorizationRequested:
		data = &domain.AuthorizationRequestedData{}
	case domain.EventAuthorizationCompleted:
		data = &domain.AuthorizationCompletedData{}
	case domain.EventClosureRequested:
		data = &domain.ClosureRequestedData{}
	case domain.EventClosed:
		data = &domain.ClosedData{}
	case domain.EventClosureFailed:
		data = &domain.ClosureFailedData{}
	case domain.EventUserReceiptRequested:
		data = &domain.UserReceiptRequestedData{}
	case domain.EventUserReceiptAddedOK:
		data = &domain.UserReceiptAddedOKData{}
	case domain.EventUserReceiptAddedKO:
		data = &domain.UserReceiptAddedKOData{}
	case domain.EventUserCanceled:
		data = &domain.UserCanceledData{}
	case domain.EventExpired:
		data = &domain.ExpiredData{}
	case domain.EventRefundRequested:
		data = &domain.RefundRequestedData{}
	default:
		return nil, fmt.Errorf("unknown event code %q", code)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, data); err != nil {
			return nil, fmt.Errorf("unmarshaling event %s payload: %w", code, err)
		}
	}

	return data, nil
}
