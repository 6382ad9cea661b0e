package model

// DeliveryReport is the outcome of dispatching one completed session.
type DeliveryReport struct {
	ContactID      string
	ContactCreated bool

	CRMErr   error
	SheetErr error
	AuditErr error
}

func (r DeliveryReport) OK() bool {
	return r.CRMErr == nil && r.SheetErr == nil && r.AuditErr == nil
}
