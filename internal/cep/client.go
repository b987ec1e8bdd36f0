// Package cep 查询 ViaCEP 做地址补全。纯建议性功能：
// 查不到/查失败只影响表单提示，提交仍走完整校验。
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"holistay/internal/core/cache"
)

var (
	ErrInvalidCEP = errors.New("cep: must be 8 digits")
	ErrNotFound   = errors.New("cep: not found")
)

// Address ViaCEP 返回的地址字段
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// viaCEP 对不存在的 CEP 返回 200 + {"erro": true}
type lookupPayload struct {
	NotFound bool    `json:"notFound"`
	Address  Address `json:"address"`
}

type Client struct {
	base string
	hc   *http.Client
	c    *cache.Cache // 可以为 nil（不缓存直查）
	ttl  time.Duration
	log  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, c *cache.Cache, ttl time.Duration, log *zap.Logger) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
		c:    c,
		ttl:  ttl,
		log:  log,
	}
}

// Digits 去掉所有非数字（"01310-930" → "01310930"）
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup 查询一个 CEP。负结果（查不到）也会进缓存。
func (c *Client) Lookup(ctx context.Context, raw string) (*Address, error) {
	digits := Digits(raw)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	if c.c == nil {
		p, err := c.fetch(ctx, digits)
		if err != nil {
			return nil, err
		}
		return p.result()
	}

	p, err := cache.GetOrLoadJSON[lookupPayload](c.c, ctx, "cep:"+digits, c.ttl,
		func(ctx context.Context) (*lookupPayload, error) {
			return c.fetch(ctx, digits)
		})
	if err != nil {
		return nil, err
	}
	return p.result()
}

func (p *lookupPayload) result() (*Address, error) {
	if p == nil || p.NotFound {
		return nil, ErrNotFound
	}
	return &p.Address, nil
}

func (c *Client) fetch(ctx context.Context, digits string) (*lookupPayload, error) {
	url := fmt.Sprintf("%s/%s/json/", c.base, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("cep lookup", zap.String("cep", digits), zap.Error(err))
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.log.Warn("cep lookup status", zap.String("cep", digits), zap.Int("status", res.StatusCode))
		return nil, fmt.Errorf("cep: unexpected status %d", res.StatusCode)
	}

	var body struct {
		Erro bool `json:"erro"`
		Address
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Erro {
		return &lookupPayload{NotFound: true}, nil
	}
	return &lookupPayload{Address: body.Address}, nil
}
