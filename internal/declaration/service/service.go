// Package service implements declaration creation against the carrier API.
package service

import (
	"context"

	"shipping_portal_backend/internal/declaration/transport"
	"shipping_portal_backend/platform/apperr"
	"shipping_portal_backend/platform/config"
	"shipping_portal_backend/platform/logger"
	"shipping_portal_backend/platform/novaposhta"
	"shipping_portal_backend/platform/phone"
	"shipping_portal_backend/platform/sanitize"
)

const msgConfigError = "server configuration error"

// Carrier is the subset of the carrier client the declaration service uses.
type Carrier interface {
	CreateInternetDocument(ctx context.Context, req novaposhta.CreateInternetDocumentRequest) (novaposhta.InternetDocument, error)
}

// Config combines the config surfaces the declaration service needs.
type Config interface {
	config.CarrierConfig
	config.DeclarationConfig
}

// Service creates shipment declarations with the carrier.
type Service struct {
	carrier Carrier
	cfg     Config
	log     *logger.Logger
}

// New creates the declaration service.
func New(carrier Carrier, cfg Config, log *logger.Logger) *Service {
	return &Service{carrier: carrier, cfg: cfg, log: log}
}

// Create validates the form and submits an InternetDocument.save call.
//
// The carrier requires counterparty references (Sender, ContactSender) that
// this service does not resolve. They come from configuration; without them the
// submission is rejected unless demo declarations are explicitly allowed, in
// which case empty references are sent and the carrier decides.
func (s *Service) Create(ctx context.Context, req transport.CreateDeclarationRequest) (transport.DeclarationResponse, error) {
	var resp transport.DeclarationResponse

	if result := ValidateForm(req); !result.IsValid {
		return resp, apperr.Validation("declaration form is invalid").WithDetails(result.Errors)
	}

	if !s.cfg.IsCarrierConfigured() {
		return resp, apperr.Internal(msgConfigError)
	}

	senderRef := s.cfg.GetSenderRef()
	contactSenderRef := s.cfg.GetContactSenderRef()
	if (senderRef == "" || contactSenderRef == "") && !s.cfg.AllowDemoDeclarations() {
		s.log.Warn("declaration rejected: counterparty references are not configured")
		return resp, apperr.Internal(msgConfigError)
	}

	payload := novaposhta.CreateInternetDocumentRequest{
		NewAddress:    "1",
		PayerType:     req.PayerType,
		PaymentMethod: req.PaymentMethod,
		CargoType:     "Parcel",
		Weight:        req.Weight,
		ServiceType:   "WarehouseWarehouse",
		SeatsAmount:   req.SeatsAmount,
		Description:   sanitize.Text(req.Description),
		Cost:          req.Cost,

		CitySender:    req.SenderCityRef,
		Sender:        senderRef,
		SenderAddress: req.SenderWarehouseRef,
		ContactSender: contactSenderRef,
		SendersPhone:  phone.NormalizeE164(req.SenderPhone),

		CityRecipient:    req.RecipientCityRef,
		Recipient:        sanitize.Text(req.RecipientName),
		RecipientAddress: req.RecipientWarehouseRef,
		ContactRecipient: sanitize.Text(req.RecipientName),
		RecipientsPhone:  phone.NormalizeE164(req.RecipientPhone),
	}

	doc, err := s.carrier.CreateInternetDocument(ctx, payload)
	if err != nil {
		s.log.UpstreamError("InternetDocument", "save", err)
		return resp, apperr.Wrap(apperr.KindUnavailable, err.Error(), err)
	}

	return transport.DeclarationResponse{
		Ref:                   doc.Ref,
		IntDocNumber:          doc.IntDocNumber,
		EstimatedDeliveryDate: doc.EstimatedDeliveryDate,
		CostOnSite:            doc.CostOnSite,
	}, nil
}
