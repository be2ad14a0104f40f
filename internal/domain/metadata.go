package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type MetadataKind string

const (
	MetaVODPurchase      MetadataKind = "vod_purchase"
	MetaEventTicket      MetadataKind = "event_ticket"
	MetaTShirtOrder      MetadataKind = "tshirt_order"
	MetaPromotionalOrder MetadataKind = "promotional_order"
	MetaSubscription     MetadataKind = "subscription"
	MetaRefund           MetadataKind = "refund"
	MetaGeneric          MetadataKind = "generic"
)

// Metadata is the category specific payload attached to a transaction.
type Metadata interface {
	Kind() MetadataKind
}

type VODPurchaseMeta struct {
	VODClassID   string `json:"vod_class_id"`
	InstructorID string `json:"instructor_id,omitempty"`
}

type EventTicketMeta struct {
	EventID      string `json:"event_id"`
	TicketTypeID string `json:"ticket_type_id,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
}

type TShirtOrderMeta struct {
	ListingID    string `json:"listing_id"`
	InstructorID string `json:"instructor_id,omitempty"`
	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
}

type PromotionalOrderMeta struct {
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

type SubscriptionMeta struct {
	PlanID      string    `json:"plan_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

type RefundMeta struct {
	OriginalTransactionID string   `json:"original_transaction_id"`
	Reason                string   `json:"reason,omitempty"`
	Original              Metadata `json:"-"`
}

type GenericMeta map[string]string

func (VODPurchaseMeta) Kind() MetadataKind      { return MetaVODPurchase }
func (EventTicketMeta) Kind() MetadataKind      { return MetaEventTicket }
func (TShirtOrderMeta) Kind() MetadataKind      { return MetaTShirtOrder }
func (PromotionalOrderMeta) Kind() MetadataKind { return MetaPromotionalOrder }
func (SubscriptionMeta) Kind() MetadataKind     { return MetaSubscription }
func (RefundMeta) Kind() MetadataKind           { return MetaRefund }
func (GenericMeta) Kind() MetadataKind          { return MetaGeneric }

type metadataEnvelope struct {
	Kind     MetadataKind    `json:"kind"`
	Data     json.RawMessage `json:"data"`
	Original json.RawMessage `json:"original,omitempty"`
}

// EncodeMetadata renders m as {"kind": ..., "data": ...}. A nil value encodes to nil.
func EncodeMetadata(m Metadata) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	env := metadataEnvelope{Kind: m.Kind(), Data: data}
	if r, ok := m.(RefundMeta); ok && r.Original != nil {
		env.Original, err = EncodeMetadata(r.Original)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(env)
}

func DecodeMetadata(raw []byte) (Metadata, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var env metadataEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}

	var (
		m   Metadata
		err error
	)
	switch env.Kind {
	case MetaVODPurchase:
		var v VODPurchaseMeta
		err = json.Unmarshal(env.Data, &v)
		m = v
	case MetaEventTicket:
		var v EventTicketMeta
		err = json.Unmarshal(env.Data, &v)
		m = v
	case MetaTShirtOrder:
		var v TShirtOrderMeta
		err = json.Unmarshal(env.Data, &v)
		m = v
	case MetaPromotionalOrder:
		var v PromotionalOrderMeta
		err = json.Unmarshal(env.Data, &v)
		m = v
	case MetaSubscription:
		var v SubscriptionMeta
		err = json.Unmarshal(env.Data, &v)
		m = v
	case MetaRefund:
		var v RefundMeta
		if err = json.Unmarshal(env.Data, &v); err == nil {
			v.Original, err = DecodeMetadata(env.Original)
		}
		m = v
	case MetaGeneric:
		v := GenericMeta{}
		err = json.Unmarshal(env.Data, &v)
		m = v
	default:
		return nil, fmt.Errorf("unknown metadata kind %q", env.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", env.Kind, err)
	}
	return m, nil
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	meta, err := EncodeMetadata(t.Metadata)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		alias
		Metadata json.RawMessage `json:"metadata,omitempty"`
	}{alias: alias(t), Metadata: meta})
}

func (t *Transaction) UnmarshalJSON(b []byte) error {
	type alias Transaction
	aux := struct {
		*alias
		Metadata json.RawMessage `json:"metadata,omitempty"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	meta, err := DecodeMetadata(aux.Metadata)
	if err != nil {
		return err
	}
	t.Metadata = meta
	return nil
}
