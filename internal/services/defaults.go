package services

import "fintrack/internal/domain"

// DefaultCategories are created on first start when no category exists.
var DefaultCategories = []domain.Category{
	{Name: "Food & Dining", Kind: domain.KindExpense, Icon: "🍔", Color: "#E74C3C"},
	{Name: "Transportation", Kind: domain.KindExpense, Icon: "🚗", Color: "#9B59B6"},
	{Name: "Utilities", Kind: domain.KindExpense, Icon: "💡", Color: "#F39C12"},
	{Name: "Shopping", Kind: domain.KindExpense, Icon: "🛒", Color: "#E67E22"},
	{Name: "Entertainment", Kind: domain.KindExpense, Icon: "🎮", Color: "#1ABC9C"},
	{Name: "Healthcare", Kind: domain.KindExpense, Icon: "🏥", Color: "#16A085"},
	{Name: "Education", Kind: domain.KindExpense, Icon: "📚", Color: "#2980B9"},
	{Name: "Other Expenses", Kind: domain.KindExpense, Icon: "📦", Color: "#95A5A6"},
	{Name: "Salary", Kind: domain.KindIncome, Icon: "💰", Color: "#27AE60"},
	{Name: "Freelance", Kind: domain.KindIncome, Icon: "💼", Color: "#3498DB"},
	{Name: "Investment", Kind: domain.KindIncome, Icon: "📈", Color: "#2ECC71"},
	{Name: "Other Income", Kind: domain.KindIncome, Icon: "💵", Color: "#1ABC9C"},
}
