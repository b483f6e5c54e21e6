package email

import (
	"context"

	"github.com/Domenick1991/eventra/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender stands in for a mail provider and logs the confirmation it would send.
type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	s.log.WithFields(logrus.Fields{
		"to":             event.Email,
		"customer":       event.CustomerName,
		"booking_id":     event.BookingID,
		"transaction_id": event.TransactionID,
		"total":          event.TotalAmount,
	}).Infof("send email about %s", event.Type)
	return nil
}
