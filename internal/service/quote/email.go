// internal/service/quote/email.go
package quote

import (
	"fmt"

	"cctv-service/internal/domain/quote"
	"cctv-service/internal/service/email"

	"go.uber.org/zap"
)

// EmailHelper builds and sends the customer confirmation and the back-office
// notification for new quote requests.
type EmailHelper struct {
	sender       *email.EmailSender
	logger       *zap.Logger
	companyEmail string
}

func NewEmailHelper(sender *email.EmailSender, logger *zap.Logger, companyEmail string) *EmailHelper {
	return &EmailHelper{
		sender:       sender,
		logger:       logger,
		companyEmail: companyEmail,
	}
}

// ConfirmationEmail builds the customer confirmation in the customer's
// language. Arabic is the default.
func (h *EmailHelper) ConfirmationEmail(q *quote.QuoteRequest) (string, *email.Message) {
	price := ""
	if q.EstimatedPrice.Valid {
		price = fmt.Sprintf("%.2f MAD", q.EstimatedPrice.Float64)
	}

	switch q.Lang {
	case "fr":
		msg := &email.Message{
			Heading: "Merci pour votre demande",
			Paragraphs: []string{
				fmt.Sprintf("Bonjour %s,", q.Name),
				"Nous avons bien reçu votre demande de devis.",
				"Notre équipe vous contactera sous 24 heures.",
			},
			Details: confirmationDetails(q, "Référence", "Service", "Nombre de caméras"),
		}
		if price != "" {
			msg.Highlight = "Estimation préliminaire : " + price
		}
		return fmt.Sprintf("Votre demande de devis %s - CCTV Pro", q.Reference), msg

	case "en":
		msg := &email.Message{
			Heading: "Thank you for your request",
			Paragraphs: []string{
				fmt.Sprintf("Hello %s,", q.Name),
				"We have received your quote request.",
				"Our team will contact you within 24 hours.",
			},
			Details: confirmationDetails(q, "Reference", "Service", "Camera count"),
		}
		if price != "" {
			msg.Highlight = "Preliminary estimate: " + price
		}
		return fmt.Sprintf("Your quote request %s - CCTV Pro", q.Reference), msg

	default:
		msg := &email.Message{
			Heading: "شكراً لطلبكم",
			Paragraphs: []string{
				fmt.Sprintf("مرحباً %s،", q.Name),
				"لقد استلمنا طلب عرض السعر الخاص بكم.",
				"سيتواصل معكم فريقنا خلال 24 ساعة.",
			},
			Details: confirmationDetails(q, "المرجع", "الخدمة", "عدد الكاميرات"),
			RTL:     true,
		}
		if price != "" {
			msg.Highlight = "التقدير المبدئي: " + price
		}
		return fmt.Sprintf("طلب عرض السعر %s - CCTV Pro", q.Reference), msg
	}
}

func confirmationDetails(q *quote.QuoteRequest, refLabel, serviceLabel, camerasLabel string) []email.Detail {
	details := []email.Detail{
		{Label: refLabel, Value: q.Reference},
		{Label: serviceLabel, Value: q.Service},
	}
	if q.CameraCount.Valid {
		details = append(details, email.Detail{
			Label: camerasLabel,
			Value: fmt.Sprintf("%d", q.CameraCount.Int32),
		})
	}
	return details
}

// NotificationEmail builds the internal alert sent to the company inbox.
func (h *EmailHelper) NotificationEmail(q *quote.QuoteRequest) (string, *email.Message) {
	msg := &email.Message{
		Heading: "New Quote Request",
		Details: []email.Detail{
			{Label: "Reference", Value: q.Reference},
			{Label: "Name", Value: q.Name},
			{Label: "Email", Value: q.Email},
			{Label: "Phone", Value: q.Phone},
			{Label: "Service", Value: q.Service},
			{Label: "Language", Value: q.Lang},
		},
		Paragraphs: []string{q.Message},
	}
	if q.EstimatedPrice.Valid {
		msg.Highlight = fmt.Sprintf("Estimated price: %.2f MAD", q.EstimatedPrice.Float64)
	}
	return fmt.Sprintf("New quote request %s", q.Reference), msg
}

// SendQuoteEmails sends both emails asynchronously. Email failures are
// logged, never surfaced to the customer.
func (h *EmailHelper) SendQuoteEmails(q *quote.QuoteRequest) {
	go func() {
		subject, msg := h.ConfirmationEmail(q)
		if err := h.sender.Send(q.Email, subject, msg); err != nil {
			h.logger.Error("failed to send quote confirmation",
				zap.String("reference", q.Reference),
				zap.String("email", q.Email),
				zap.Error(err),
			)
		} else {
			h.logger.Info("quote confirmation sent",
				zap.String("reference", q.Reference),
			)
		}
	}()

	if h.companyEmail == "" {
		return
	}
	go func() {
		subject, msg := h.NotificationEmail(q)
		if err := h.sender.Send(h.companyEmail, subject, msg); err != nil {
			h.logger.Error("failed to send quote notification",
				zap.String("reference", q.Reference),
				zap.Error(err),
			)
		}
	}()
}
