package pricing

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Type is how a listing is priced.
type Type string

const (
	Absolute   Type = "ABSOLUTE"
	CXRelative Type = "CX_RELATIVE"
	ContactMe  Type = "CONTACT_ME"

	contactMeLabel = "Contact me"
	cxPriceLabel   = "CX price"
)

var hundred = decimal.NewFromInt(100)

// Spec is a seller's pricing choice for a listing.
type Spec struct {
	Type Type
	// Value is the unit price for Absolute, or the offset for CXRelative.
	Value *float64
	// Exchange is the exchange code the CX offset applies to, e.g. NC1.
	Exchange string
	// CXIsAbsolute marks Value as an absolute offset rather than a percentage.
	CXIsAbsolute bool
}

// Price is the computed price of a listing.
type Price struct {
	// Unit is the effective unit price; nil when there is no numeric price.
	Unit *float64 `json:"unit_price"`
	// Label renders the pricing choice, e.g. "1,500/u" or "CX.NC1-10%".
	Label string `json:"label"`
}

// Display renders the effective unit price when known, else the label.
func (p Price) Display() string {
	if p.Unit == nil {
		return p.Label
	}
	return formatUnit(decimal.NewFromFloat(*p.Unit))
}

// EffectiveCX applies offset to a CX ask: ask+offset for an absolute offset,
// ask*(1+offset/100) for a percentage.
func EffectiveCX(ask, offset float64, absolute bool) decimal.Decimal {
	a := decimal.NewFromFloat(ask)
	o := decimal.NewFromFloat(offset)
	if absolute {
		return a.Add(o)
	}
	return a.Mul(decimal.NewFromInt(1).Add(o.Div(hundred)))
}

// Evaluate prices spec against the current CX ask for its exchange. A nil ask
// means no quote is available; the label is still rendered and Unit stays nil.
func Evaluate(spec Spec, ask *float64) Price {
	switch spec.Type {
	case Absolute:
		if spec.Value == nil || *spec.Value == 0 {
			return Price{Label: contactMeLabel}
		}
		v := *spec.Value
		return Price{Unit: &v, Label: formatUnit(decimal.NewFromFloat(v))}

	case CXRelative:
		price := Price{Label: cxLabel(spec)}
		if ask == nil {
			return price
		}
		offset := 0.0
		if spec.Value != nil {
			offset = *spec.Value
		}
		unit := EffectiveCX(*ask, offset, spec.CXIsAbsolute).InexactFloat64()
		price.Unit = &unit
		return price

	default:
		return Price{Label: contactMeLabel}
	}
}

func cxLabel(spec Spec) string {
	if spec.Value == nil {
		return cxPriceLabel
	}
	v := decimal.NewFromFloat(*spec.Value).RoundBank(0)
	sign := ""
	if !v.IsNegative() {
		sign = "+"
	}
	exchange := ""
	if spec.Exchange != "" {
		exchange = "." + spec.Exchange
	}
	if spec.CXIsAbsolute {
		return fmt.Sprintf("CX%s%s%s", exchange, sign, humanize.Comma(v.IntPart()))
	}
	return fmt.Sprintf("CX%s%s%s%%", exchange, sign, v.String())
}

func formatUnit(v decimal.Decimal) string {
	return humanize.Comma(v.RoundBank(0).IntPart()) + "/u"
}
