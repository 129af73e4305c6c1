package usecase

import (
	"context"
	"fmt"

	"github.com/halvora/transaction-service/internal/domain"
	txdto "github.com/halvora/transaction-service/internal/usecase/dto/transaction"
)

// UpdateAuthorization records the gateway's authorization verdict. A declined
// authorization is still a completed attempt: every recognized outcome,
// success or failure, appends AUTHORIZATION_COMPLETED.
func (uc *DefaultTransactionUsecase) UpdateAuthorization(ctx context.Context, input *txdto.UpdateAuthorizationInput) (_ *txdto.UpdateAuthorizationOutput, err error) {
	defer func() { uc.recordCommand("update_authorization", err) }()

	events, tx, err := uc.replay(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if err := guard(tx, domain.StatusAuthorizationRequested); err != nil {
		return nil, err
	}

	result, errorCode, err := canonicalOutcome(input)
	if err != nil {
		return nil, err
	}

	data := &domain.AuthorizationCompletedData{
		AuthorizationCode: input.AuthorizationCode,
		OperationResult:   result,
		ErrorCode:         errorCode,
	}

	event, err := uc.appendEvent(ctx, tx.TransactionID, events, data)
	if err != nil {
		return nil, err
	}
	if err := uc.publish(ctx, event, 0); err != nil {
		return nil, err
	}

	return &txdto.UpdateAuthorizationOutput{
		TransactionID: tx.TransactionID,
		Status:        domain.StatusAuthorizationCompleted,
	}, nil
}

// canonicalOutcome maps the gateway-specific outcome payload into the single
// {operationResult, errorCode} contract.
func canonicalOutcome(input *txdto.UpdateAuthorizationInput) (domain.OperationResult, string, error) {
	switch input.Gateway {
	case domain.GatewayNPG:
		switch result := domain.OperationResult(input.OperationResult); result {
		case domain.OperationResultExecuted:
			return result, "", nil
		case domain.OperationResultDeclined,
			domain.OperationResultDenied,
			domain.OperationResultCanceled,
			domain.OperationResultFailed:
			return result, input.ErrorCode, nil
		default:
			return "", "", &domain.InvalidRequestError{Reason: fmt.Sprintf("unrecognized operation result %q", input.OperationResult)}
		}

	case domain.GatewayRedirect:
		// Legacy outcome codes collapse onto the canonical result set.
		switch input.OutcomeCode {
		case "OK":
			return domain.OperationResultExecuted, "", nil
		case "KO":
			return domain.OperationResultDeclined, input.ErrorCode, nil
		case "CANCELED":
			return domain.OperationResultCanceled, input.ErrorCode, nil
		case "ERROR", "EXPIRED":
			return domain.OperationResultFailed, input.ErrorCode, nil
		default:
			return "", "", &domain.InvalidRequestError{Reason: fmt.Sprintf("unrecognized outcome code %q", input.OutcomeCode)}
		}

	default:
		return "", "", &domain.InvalidRequestError{Reason: fmt.Sprintf("unrecognized gateway %q", input.Gateway)}
	}
}
