package document

// json.go is the wire codec for the tagged union. Documents travel as flat
// JSON objects with a "type" discriminator, matching the persistence
// service's representation. The expense amount/date stay strings on the wire
// (they may carry the Missing placeholder); the other variants use numbers.

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type envelope struct {
	ID             json.Number     `json:"id"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	UploadDate     string          `json:"uploadDate"`
	ImagePath      string          `json:"image_path,omitempty"`
	Employer       string          `json:"employer,omitempty"`
	Wages          float64         `json:"wages,omitempty"`
	FedWithholding float64         `json:"fedWithholding,omitempty"`
	Payer          string          `json:"payer,omitempty"`
	Amount         json.RawMessage `json:"amount,omitempty"`
	Vendor         string          `json:"vendor,omitempty"`
	Date           string          `json:"date,omitempty"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	Category       string          `json:"category,omitempty"`
	CharityName    string          `json:"charityName,omitempty"`
	DonationType   string          `json:"donationType,omitempty"`
}

// MarshalDocument encodes a document as its wire JSON object.
func MarshalDocument(d Document) ([]byte, error) {
	env := envelope{
		ID:         json.Number(d.ID()),
		Type:       string(d.Type()),
		Status:     string(d.Status()),
		UploadDate: d.UploadDate(),
		ImagePath:  d.ImagePath(),
	}

	switch v := d.(type) {
	case W2:
		env.Employer = v.Employer
		env.Wages = v.Wages
		env.FedWithholding = v.FedWithholding
	case Form1099:
		env.Payer = v.Payer
		env.Amount = numberRaw(v.Amount)
	case Expense:
		env.Vendor = v.Vendor
		env.Amount = stringRaw(v.Amount)
		env.Date = v.Date
		env.PaymentMethod = v.PaymentMethod
		env.Category = v.Category
	case Donation:
		env.CharityName = v.CharityName
		env.DonationType = v.DonationType
		env.Amount = numberRaw(v.Amount)
		env.Date = v.Date
	default:
		return nil, fmt.Errorf("unknown document variant %T", d)
	}

	return json.Marshal(env)
}

// UnmarshalDocument decodes one wire JSON object into its variant.
func UnmarshalDocument(data []byte) (Document, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fromEnvelope(env)
}

// UnmarshalDocuments decodes a wire JSON array of documents.
func UnmarshalDocuments(data []byte) ([]Document, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document list: %w", err)
	}

	docs := make([]Document, 0, len(raw))
	for _, r := range raw {
		d, err := UnmarshalDocument(r)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func fromEnvelope(env envelope) (Document, error) {
	typ, err := ParseType(env.Type)
	if err != nil {
		return nil, err
	}

	status, ok := NormalizeStatus(env.Status)
	if !ok {
		status = StatusPending
	}

	base := Base{
		DocID:   env.ID.String(),
		DocType: typ,
		State:   status,
		Upload:  env.UploadDate,
		Image:   env.ImagePath,
	}

	switch typ {
	case TypeW2:
		return W2{
			Base:           base,
			Employer:       env.Employer,
			Wages:          env.Wages,
			FedWithholding: env.FedWithholding,
		}, nil
	case Type1099:
		amt, err := rawNumber(env.Amount)
		if err != nil {
			return nil, fmt.Errorf("1099 amount: %w", err)
		}
		return Form1099{Base: base, Payer: env.Payer, Amount: amt}, nil
	case TypeExpense:
		return Expense{
			Base:          base,
			Vendor:        env.Vendor,
			Amount:        rawString(env.Amount),
			Date:          env.Date,
			PaymentMethod: env.PaymentMethod,
			Category:      env.Category,
		}, nil
	case TypeDonation:
		amt, err := rawNumber(env.Amount)
		if err != nil {
			return nil, fmt.Errorf("donation amount: %w", err)
		}
		return Donation{
			Base:         base,
			CharityName:  env.CharityName,
			DonationType: env.DonationType,
			Amount:       amt,
			Date:         env.Date,
		}, nil
	}

	return nil, fmt.Errorf("unknown document type: %q", env.Type)
}

func numberRaw(f float64) json.RawMessage {
	return json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64))
}

func stringRaw(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

// rawNumber reads a JSON number, tolerating quoted numerics.
func rawNumber(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("invalid number %s", raw)
	}
	if s == "" || s == Missing {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// rawString reads a JSON string, tolerating bare numbers.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
