package ledger

// CategoryClass is the closed classification of an expense label. Every
// label maps to exactly one class, so per-class totals always partition
// the total expense of a period.
type CategoryClass int

const (
	// ClassOther collects every label not matched by the fixed or
	// leisure sets and not equal to a reserved label.
	ClassOther CategoryClass = iota
	ClassFixed
	ClassLeisure
	ClassPayrollDeduction
	ClassCreditCard
)

// Reserved labels matched exactly. Payroll deductions and credit-card
// bills are carved out of expenses before any other classification.
const (
	LabelPayrollDeduction = "Desconto em Folha"
	LabelCreditCardBill   = "Fatura do Cartão"
)

// fixedLabels are recurring essential expenses. Comparison is
// case-sensitive against the exact product labels; there is deliberately
// no fuzzy matching, so every expense lands in exactly one bucket.
var fixedLabels = map[string]bool{
	"Moradia":     true,
	"Contas":      true,
	"Mercado":     true,
	"Transporte":  true,
	"Saúde":       true,
	"Educação":    true,
	"Internet":    true,
	"Assinaturas": true,
}

// leisureLabels are discretionary expenses.
var leisureLabels = map[string]bool{
	"Lazer":             true,
	"Restaurantes":      true,
	"Viagens":           true,
	"Compras":           true,
	"Cuidados Pessoais": true,
}

// Classify maps a free-text category label to its CategoryClass. It is
// total: every label classifies, unknown ones as ClassOther. Income is
// decided by the transaction's own type, never by the label.
func Classify(label string) CategoryClass {
	switch {
	case label == LabelPayrollDeduction:
		return ClassPayrollDeduction
	case label == LabelCreditCardBill:
		return ClassCreditCard
	case fixedLabels[label]:
		return ClassFixed
	case leisureLabels[label]:
		return ClassLeisure
	default:
		return ClassOther
	}
}

// String returns the class name used in logs and test failure messages.
func (c CategoryClass) String() string {
	switch c {
	case ClassFixed:
		return "fixed"
	case ClassLeisure:
		return "leisure"
	case ClassPayrollDeduction:
		return "payroll_deduction"
	case ClassCreditCard:
		return "credit_card"
	default:
		return "other"
	}
}
