package ledger

import "fmt"

// AccountClass is the leading digit of a SYSCOHADA account number.
type AccountClass byte

const (
	ClassCapital    AccountClass = '1'
	ClassFixedAsset AccountClass = '2'
	ClassInventory  AccountClass = '3'
	ClassThirdParty AccountClass = '4'
	ClassFinancial  AccountClass = '5'
	ClassExpense    AccountClass = '6'
	ClassRevenue    AccountClass = '7'
)

// String returns the class digit as a string.
func (c AccountClass) String() string {
	return string(rune(c))
}

// Label returns the SYSCOHADA chart heading for the class.
func (c AccountClass) Label() string {
	switch c {
	case ClassCapital:
		return "Class 1 - Capital"
	case ClassFixedAsset:
		return "Class 2 - Fixed assets"
	case ClassInventory:
		return "Class 3 - Inventory"
	case ClassThirdParty:
		return "Class 4 - Third parties"
	case ClassFinancial:
		return "Class 5 - Cash and financial"
	case ClassExpense:
		return "Class 6 - Expenses"
	case ClassRevenue:
		return "Class 7 - Revenue"
	}
	return "Class ?"
}

// Classes lists all account classes in chart order.
var Classes = []AccountClass{
	ClassCapital, ClassFixedAsset, ClassInventory, ClassThirdParty,
	ClassFinancial, ClassExpense, ClassRevenue,
}

// ClassTable maps each account class to its normal-balance side. It replaces
// the legacy "12345" membership check with an explicit lookup built once at
// startup.
type ClassTable map[AccountClass]Side

// LegacyTable reproduces the convention of the source chart tables: classes
// 1-5 are debit-normal and classes 6-7 credit-normal. Treating class 1
// (equity) as debit-normal is not the standard SYSCOHADA convention; it is
// kept here because downstream reports were built against it. Use
// StandardTable to get the textbook convention instead.
func LegacyTable() ClassTable {
	return ClassTable{
		ClassCapital:    SideDebit,
		ClassFixedAsset: SideDebit,
		ClassInventory:  SideDebit,
		ClassThirdParty: SideDebit,
		ClassFinancial:  SideDebit,
		ClassExpense:    SideCredit,
		ClassRevenue:    SideCredit,
	}
}

// StandardTable marks equity (class 1) credit-normal and expenses (class 6)
// debit-normal, following the textbook SYSCOHADA convention.
func StandardTable() ClassTable {
	return ClassTable{
		ClassCapital:    SideCredit,
		ClassFixedAsset: SideDebit,
		ClassInventory:  SideDebit,
		ClassThirdParty: SideDebit,
		ClassFinancial:  SideDebit,
		ClassExpense:    SideDebit,
		ClassRevenue:    SideCredit,
	}
}

// Classify resolves an account number to its class and normal-balance side.
// The number must be non-empty and start with a digit 1-7.
func (t ClassTable) Classify(accountNumber string) (AccountClass, Side, error) {
	if accountNumber == "" {
		return 0, "", ErrEmptyAccountNumber
	}
	class := AccountClass(accountNumber[0])
	side, ok := t[class]
	if !ok {
		return 0, "", fmt.Errorf("account %q: %w", accountNumber, ErrUnknownAccountClass)
	}
	return class, side, nil
}
