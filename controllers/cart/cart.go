package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DillanMilo/angus-biltong-sub000/cart"
	"github.com/DillanMilo/angus-biltong-sub000/catalog"
	"github.com/DillanMilo/angus-biltong-sub000/checkout"
	"github.com/DillanMilo/angus-biltong-sub000/commerce"
	"github.com/DillanMilo/angus-biltong-sub000/controllers/respond"
	"github.com/DillanMilo/angus-biltong-sub000/middleware"
	"github.com/DillanMilo/angus-biltong-sub000/models"
	"github.com/gin-gonic/gin"
)

type AddItemInput struct {
	ProductID int `json:"product_id" binding:"required,min=1"`
	Quantity  int `json:"quantity"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartResponse is the cart state plus its price summary.
type CartResponse struct {
	cart.State
	Count int            `json:"count"`
	Quote checkout.Quote `json:"quote"`
}

func response(store *cart.Store, policy checkout.Policy) CartResponse {
	st := store.State()
	return CartResponse{State: st, Count: store.Count(), Quote: policy.Quote(st.Items)}
}

func emptyResponse(policy checkout.Policy) CartResponse {
	return CartResponse{State: cart.State{Items: []models.LineItem{}}, Quote: policy.Quote(nil)}
}

func open(c *gin.Context, sessions *cart.Sessions) *cart.Store {
	return sessions.Open(c.Request.Context(), middleware.SessionID(c))
}

// existing is the visitor's store if they have a cart. Requests that cannot add
// anything use it so a bare visit keeps nothing in memory.
func existing(c *gin.Context, sessions *cart.Sessions) (*cart.Store, bool) {
	return sessions.Existing(c.Request.Context(), middleware.SessionID(c))
}

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return id, true
}

// GET /cart
func GetCart(sessions *cart.Sessions, policy checkout.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := existing(c, sessions)
		if !ok {
			c.JSON(http.StatusOK, emptyResponse(policy))
			return
		}
		c.JSON(http.StatusOK, response(store, policy))
	}
}

// POST /cart/items
func AddCartItem(sessions *cart.Sessions, products *catalog.Service, policy checkout.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadJSON(c, err)
			return
		}

		product, err := products.Product(c.Request.Context(), input.ProductID)
		if err != nil {
			if errors.Is(err, commerce.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
				return
			}
			respond.Upstream(c, err, "Failed to fetch product")
			return
		}

		store := open(c, sessions)
		store.Add(c.Request.Context(), product, input.Quantity)
		c.JSON(http.StatusOK, response(store, policy))
	}
}

// PUT /cart/items/:product_id
func UpdateCartItem(sessions *cart.Sessions, policy checkout.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respond.BadJSON(c, err)
			return
		}

		store, ok := existing(c, sessions)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		if _, found := store.Lookup(id); !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		store.UpdateQuantity(c.Request.Context(), id, input.Quantity)
		c.JSON(http.StatusOK, response(store, policy))
	}
}

// DELETE /cart/items/:product_id
func DeleteCartItem(sessions *cart.Sessions, policy checkout.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := productID(c)
		if !ok {
			return
		}
		store, ok := existing(c, sessions)
		if !ok {
			c.JSON(http.StatusOK, emptyResponse(policy))
			return
		}
		store.Remove(c.Request.Context(), id)
		c.JSON(http.StatusOK, response(store, policy))
	}
}

// DELETE /cart
func ClearCart(sessions *cart.Sessions, policy checkout.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := existing(c, sessions)
		if !ok {
			c.JSON(http.StatusOK, emptyResponse(policy))
			return
		}
		store.Clear(c.Request.Context())
		c.JSON(http.StatusOK, response(store, policy))
	}
}

// POST /cart/checkout
func Checkout(sessions *cart.Sessions, handoff *checkout.HandOff) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.LineItem
		if store, ok := existing(c, sessions); ok {
			items = store.Items()
		}
		sess, err := handoff.Begin(c.Request.Context(), items)
		if err != nil {
			if errors.Is(err, checkout.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
				return
			}
			respond.Upstream(c, err, "Failed to start checkout")
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}
