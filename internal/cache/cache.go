package cache

import (
	"sync"
	"time"
)

// Caché in-memory thread-safe con TTL y limpieza periódica. Se usa para
// respuestas del proveedor de routing externo (mismo origen/destino
// consultado repetidas veces al redibujar) y para el "usuario actual"
// del cliente de escritorio.
//
// Uso:
//   c := cache.New(time.Minute, 5*time.Minute)
//   c.Set("osrm:20.629,-87.073|20.650,-87.080|driving", resp)
//   if v, found := c.Get(key); found { ... }

// Item representa un elemento en caché con timestamp de expiración
type Item struct {
	Value      interface{}
	Expiration int64 // Unix nano; 0 = sin expiración
}

// Cache es un almacén key-value con TTL por defecto
type Cache struct {
	items             map[string]Item
	mu                sync.RWMutex
	defaultExpiration time.Duration
	cleanupInterval   time.Duration
	stopCleanup       chan bool
}

// New crea una instancia con TTL por defecto y limpieza periódica
func New(defaultExpiration, cleanupInterval time.Duration) *Cache {
	c := &Cache{
		items:             make(map[string]Item),
		defaultExpiration: defaultExpiration,
		cleanupInterval:   cleanupInterval,
		stopCleanup:       make(chan bool),
	}

	go c.startCleanupTimer()

	return c
}

// Set almacena un valor con la expiración por defecto
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.defaultExpiration)
}

// SetWithTTL almacena un valor con una expiración específica
func (c *Cache) SetWithTTL(key string, value interface{}, duration time.Duration) {
	var expiration int64

	if duration > 0 {
		expiration = time.Now().Add(duration).UnixNano()
	}

	c.mu.Lock()
	c.items[key] = Item{
		Value:      value,
		Expiration: expiration,
	}
	c.mu.Unlock()
}

// Get recupera un valor; retorna (nil, false) si no existe o expiró
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()

	if !found {
		return nil, false
	}

	if item.Expiration > 0 && time.Now().UnixNano() > item.Expiration {
		c.Delete(key)
		return nil, false
	}

	return item.Value, true
}

// Delete elimina una key del caché
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Clear limpia completamente el caché
func (c *Cache) Clear() {
	c.mu.Lock()
	c.items = make(map[string]Item)
	c.mu.Unlock()
}

// Count retorna el número de items (incluye expirados aún no barridos)
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) startCleanupTimer() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *Cache) deleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for key, item := range c.items {
		if item.Expiration > 0 && now > item.Expiration {
			delete(c.items, key)
		}
	}
}

// Stop detiene la limpieza automática
func (c *Cache) Stop() {
	c.stopCleanup <- true
}
