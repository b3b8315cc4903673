package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/lazsilvadev/pi-aponti-2026-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// In-memory per-IP rate limiting. A PDV backend serves a handful of terminals
// on a local network, so fixed windows in process memory are enough; there is
// no shared state to coordinate across instances.

type janela struct {
	mu       sync.Mutex
	contagem int
	expiraEm time.Time
}

// limitador is one named limiter with its own IP table.
type limitador struct {
	mu       sync.Mutex
	porIP    map[string]*janela
	limite   int
	duracao  time.Duration
	mensagem string
}

func novoLimitador(limite int, duracao time.Duration, mensagem string) *limitador {
	l := &limitador{
		porIP:    make(map[string]*janela),
		limite:   limite,
		duracao:  duracao,
		mensagem: mensagem,
	}
	go l.limpar()
	return l
}

func (l *limitador) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		l.mu.Lock()
		j, ok := l.porIP[ip]
		if !ok {
			j = &janela{}
			l.porIP[ip] = j
		}
		l.mu.Unlock()

		j.mu.Lock()
		agora := time.Now()
		if agora.After(j.expiraEm) {
			j.contagem = 0
			j.expiraEm = agora.Add(l.duracao)
		}
		j.contagem++
		excedeu := j.contagem > l.limite
		expiraEm := j.expiraEm
		j.mu.Unlock()

		if excedeu {
			c.Header("Retry-After", expiraEm.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensagem))
			return
		}
		c.Next()
	}
}

// limpar drops expired windows so IPs that never return don't accumulate.
func (l *limitador) limpar() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		agora := time.Now()
		removidos := 0

		l.mu.Lock()
		for ip, j := range l.porIP {
			j.mu.Lock()
			if agora.After(j.expiraEm) {
				delete(l.porIP, ip)
				removidos++
			}
			j.mu.Unlock()
		}
		restantes := len(l.porIP)
		l.mu.Unlock()

		if removidos > 0 {
			log.Debug().
				Int("removidos", removidos).
				Int("restantes", restantes).
				Msg("janelas de rate limit expiradas removidas")
		}
	}
}

// LoginRateLimiter caps login attempts at 20 per minute per IP. Brute-force
// protection for the only unauthenticated mutating endpoint.
func LoginRateLimiter() gin.HandlerFunc {
	return novoLimitador(20, time.Minute, "Muitas tentativas de login. Tente novamente em 1 minuto.").handler()
}

// RateLimiter is the general API limiter applied to the whole router.
func RateLimiter(limite int, duracao time.Duration) gin.HandlerFunc {
	return novoLimitador(limite, duracao, "Muitas requisições. Tente novamente em instantes.").handler()
}
