package mapping

import (
	"github.com/easyshop/ledger/internal/core/domain"
	"github.com/easyshop/ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		TenantID:      d.TenantID,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		Type:          string(d.Type),
		Description:   d.Description,
		ReferenceType: string(d.Reference.Kind),
		ReferenceID:   d.Reference.ID,
		DrawerID:      d.DrawerID,
		OccurredAt:    d.OccurredAt,
		IsDirect:      d.IsDirect,
		ReversedBy:    d.ReversedBy,
		Reverses:      d.Reverses,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
	if d.Party != nil {
		kind := string(d.Party.Kind)
		id := d.Party.ID
		m.PartyType = &kind
		m.PartyID = &id
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		TenantID:      m.TenantID,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		Type:          domain.TransactionType(m.Type),
		Description:   m.Description,
		Reference:     domain.Reference{Kind: domain.ReferenceKind(m.ReferenceType), ID: m.ReferenceID},
		DrawerID:      m.DrawerID,
		OccurredAt:    m.OccurredAt,
		IsDirect:      m.IsDirect,
		ReversedBy:    m.ReversedBy,
		Reverses:      m.Reverses,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
	if m.PartyType != nil && m.PartyID != nil {
		d.Party = &domain.PartyRef{Kind: domain.PartyKind(*m.PartyType), ID: *m.PartyID}
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelPayment converts a domain Payment to a model Payment.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:     d.PaymentID,
		TenantID:      d.TenantID,
		PaymentNumber: d.PaymentNumber,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		Method:        string(d.Method),
		ReferenceType: string(d.Reference.Kind),
		ReferenceID:   d.Reference.ID,
		DrawerID:      d.DrawerID,
		OccurredAt:    d.OccurredAt,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:     m.PaymentID,
		TenantID:      m.TenantID,
		PaymentNumber: m.PaymentNumber,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		Method:        domain.PaymentMethod(m.Method),
		Reference:     domain.Reference{Kind: domain.ReferenceKind(m.ReferenceType), ID: m.ReferenceID},
		DrawerID:      m.DrawerID,
		OccurredAt:    m.OccurredAt,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToModelStatement converts a domain Statement to a model Statement.
func ToModelStatement(d domain.Statement) models.Statement {
	return models.Statement{
		StatementID:   d.StatementID,
		TenantID:      d.TenantID,
		TransactionID: d.TransactionID,
		PartyType:     string(d.Party.Kind),
		PartyID:       d.Party.ID,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		Kind:          string(d.Kind),
		ReferenceType: string(d.Reference.Kind),
		ReferenceID:   d.Reference.ID,
		OccurredAt:    d.OccurredAt,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainStatement converts a model Statement to a domain Statement.
func ToDomainStatement(m models.Statement) domain.Statement {
	return domain.Statement{
		StatementID:   m.StatementID,
		TenantID:      m.TenantID,
		TransactionID: m.TransactionID,
		Party:         domain.PartyRef{Kind: domain.PartyKind(m.PartyType), ID: m.PartyID},
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		Kind:          domain.StatementKind(m.Kind),
		Reference:     domain.Reference{Kind: domain.ReferenceKind(m.ReferenceType), ID: m.ReferenceID},
		OccurredAt:    m.OccurredAt,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToModelSaleLine converts a domain SaleLine to a model SaleLine.
func ToModelSaleLine(d domain.SaleLine) models.SaleLine {
	return models.SaleLine{
		LineID:        d.LineID,
		TenantID:      d.TenantID,
		TransactionID: d.TransactionID,
		VariantID:     d.VariantID,
		Quantity:      d.Quantity,
		LineTotal:     d.LineTotal,
		CurrencyCode:  d.CurrencyCode,
		OccurredAt:    d.OccurredAt,
	}
}

// ToDomainSaleLine converts a model SaleLine to a domain SaleLine.
func ToDomainSaleLine(m models.SaleLine) domain.SaleLine {
	return domain.SaleLine{
		LineID:        m.LineID,
		TenantID:      m.TenantID,
		TransactionID: m.TransactionID,
		VariantID:     m.VariantID,
		Quantity:      m.Quantity,
		LineTotal:     m.LineTotal,
		CurrencyCode:  m.CurrencyCode,
		OccurredAt:    m.OccurredAt,
	}
}
