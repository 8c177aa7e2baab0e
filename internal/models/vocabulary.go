package models

// AgentType is an entry of the submission form's type picker.
type AgentType struct {
	Value       string
	Label       string
	Description string
}

// AgentTypes lists the agent kinds offered to builders.
var AgentTypes = []AgentType{
	{Value: "conversational", Label: "Conversational AI", Description: "Chat-based interactions"},
	{Value: "automation", Label: "Automation Agent", Description: "Task automation and workflows"},
	{Value: "analytics", Label: "Analytics Agent", Description: "Data analysis and insights"},
	{Value: "creative", Label: "Creative Agent", Description: "Content and design generation"},
	{Value: "research", Label: "Research Agent", Description: "Information gathering and analysis"},
	{Value: "customer-service", Label: "Customer Service", Description: "Support and assistance"},
}

// Categories lists the marketplace categories.
var Categories = []string{
	"Marketing",
	"Sales",
	"Customer Service",
	"Operations",
	"HR",
	"Finance",
	"Creative",
	"Research",
	"Travel",
	"News & Media",
	"E-commerce",
	"Healthcare",
	"Education",
	"Legal",
	"Real Estate",
	"Logistics",
}

// PriceTypes in picker order.
var PriceTypes = []PriceType{PriceMonth, PriceWeek, PriceDay, PriceUsage, PriceFree}
