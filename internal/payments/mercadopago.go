package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/VidaPlenaApps/clinic-scheduler/internal/models"
)

// Charger cobra sessões concluídas via Mercado Pago.
// Sem access token configurado o recurso fica desligado.
type Charger struct {
	client payment.Client
}

func NewCharger(accessToken string) (*Charger, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Charger{client: payment.NewClient(cfg)}, nil
}

func (c *Charger) Enabled() bool {
	return c != nil
}

type ChargeResult struct {
	PaymentID int    `json:"payment_id"`
	Status    string `json:"status"`
}

// ChargeSession cria a cobrança pix de uma sessão concluída.
func (c *Charger) ChargeSession(
	ctx context.Context,
	ap *models.Appointment,
	sessionType *models.SessionType,
	payerEmail string,
) (*ChargeResult, error) {

	req := payment.Request{
		TransactionAmount: sessionType.Price,
		Description: fmt.Sprintf(
			"Sessão %s em %s",
			sessionType.Name,
			ap.StartTime.Format("02/01/2006 15:04"),
		),
		PaymentMethodID: "pix",
		Payer: &payment.PayerRequest{
			Email: payerEmail,
		},
	}

	resp, err := c.client.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &ChargeResult{
		PaymentID: resp.ID,
		Status:    resp.Status,
	}, nil
}
