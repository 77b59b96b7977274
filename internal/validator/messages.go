package validator

var orderMessages = map[string]string{
	"customer_name":  "Name must be between 2 and 100 characters",
	"email.required": "Email is required",
	"email.max":      "Email must be at most 255 characters",
	"email":          "Invalid email address",
	"phone":          "Invalid phone number",
	"address":        "Address must be between 10 and 500 characters",
	"city":           "City must be between 2 and 100 characters",
	"state":          "State must be between 2 and 100 characters",
	"pincode":        "Pincode must be exactly 6 digits",
	"items":          "At least one item is required",
	"product_name":   "Product name is required",
	"size":           "Size is required",
	"quantity":       "Quantity must be between 1 and 100000",
	"price_per_kg":   "Price per kg must be 0 or more",
	"notes":          "Notes must be at most 1000 characters",
}

var productMessages = map[string]string{
	"name.required": "Name is required",
	"name":          "Name must be at most 200 characters",
	"description":   "Description must be at most 2000 characters",
	"category":      "Invalid category",
	"image":         "Image URL must be at most 500 characters",
	"price_per_kg":  "Price per kg must be 0 or more",
	"features":      "Each feature must be 1 to 200 characters",
	"size.required": "Size is required",
	"size":          "Size must be at most 100 characters",
	"micron":        "Micron must be greater than 0",
	"capacity":      "Capacity must be at most 100 characters",
	"pcs_per_kg":    "Pieces per kg must be greater than 0",
}

var contactMessages = map[string]string{
	"name":           "Name must be between 2 and 100 characters",
	"email.required": "Email is required",
	"email.max":      "Email must be at most 255 characters",
	"email":          "Invalid email address",
	"phone":          "Phone must be at most 20 characters",
	"company":        "Company must be at most 100 characters",
	"message":        "Message must be between 10 and 2000 characters",
}
