package common

type contextKey string

// ShopIDKey carries the authenticated tenant's shop ID through the request
// context, set by the JWT middleware.
const ShopIDKey contextKey = "shop_id"
