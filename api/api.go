// Copyright (C) 2024 XELIS
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"p2put/address"
	"p2put/burn"
	"p2put/config"
	"p2put/database"
	"p2put/log"
	"p2put/palette"
	"p2put/pixel"
	"p2put/pixeladdr"
	"p2put/ratelimit"
	"p2put/util"

	"github.com/gin-gonic/gin"
)

// error codes returned in the "error" object
const (
	ERR_NOT_FOUND = iota + 1
	ERR_INVALID_PARAM
	ERR_RATE_LIMITED
	ERR_NOT_BURN_ADDRESS
	ERR_INTERNAL
)

type Server struct {
	Gen     *pixeladdr.Locked
	Limiter *ratelimit.Limiter

	// optional, addresses are not recorded when nil
	Store *database.Store

	TrustedProxies []string
}

type colourJson struct {
	palette.Colour
	Hex   string `json:"hex"`
	Red   uint8  `json:"red"`
	Green uint8  `json:"green"`
	Blue  uint8  `json:"blue"`
}

func newColourJson(c palette.Colour) colourJson {
	return colourJson{
		Colour: c,
		Hex:    palette.Hex(c),
		Red:    palette.Red(c),
		Green:  palette.Green(c),
		Blue:   palette.Blue(c),
	}
}

func sendError(c *gin.Context, status, code int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": msg,
		},
	})
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}

// limit charges score to the client IP before running the handler. Banned
// IPs are refused without adding to their score.
func (s *Server) limit(score uint32) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.Limiter == nil {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if s.Limiter.IsBanned(ip) || !s.Limiter.CanDoAction(ip, score) {
			sendError(c, http.StatusTooManyRequests, ERR_RATE_LIMITED, "rate limited")
			return
		}
		c.Next()
	}
}

// invalid charges the extra score of a malformed request.
func (s *Server) invalid(c *gin.Context, msg string) {
	if s.Limiter != nil {
		s.Limiter.CanDoAction(c.ClientIP(), config.ACTION_INVALID)
	}
	sendError(c, http.StatusBadRequest, ERR_INVALID_PARAM, msg)
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.SetTrustedProxies(s.TrustedProxies)

	r.Use(cors())

	r.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	r.GET("/palette", s.limit(config.ACTION_PALETTE), func(c *gin.Context) {
		c.Header("Cache-Control", "max-age="+strconv.Itoa(config.API_CACHE_MAX_AGE))

		p := palette.Palette()
		out := make([]colourJson, 0, len(p))
		for _, v := range p {
			out = append(out, newColourJson(v))
		}
		c.JSON(200, out)
	})

	r.GET("/palette/:id", s.limit(config.ACTION_PALETTE), func(c *gin.Context) {
		id, err := util.ParseUint[uint8](c.Param("id"))
		if err != nil {
			s.invalid(c, "invalid colour id")
			return
		}
		col, err := palette.FromId(id)
		if err != nil {
			sendError(c, 404, ERR_NOT_FOUND, err.Error())
			return
		}

		c.Header("Cache-Control", "max-age="+strconv.Itoa(config.API_CACHE_MAX_AGE))
		c.JSON(200, newColourJson(col))
	})

	r.GET("/address/:x/:y/:colour", s.limit(config.ACTION_ADDRESS), s.handleAddress)

	r.GET("/decode/:addr", s.limit(config.ACTION_DECODE), func(c *gin.Context) {
		px, err := s.Gen.Decode(c.Param("addr"))
		if err != nil {
			log.Debugf("decode %s: %s", c.Param("addr"), err)
			if errors.Is(err, burn.ErrNotBurnAddress) || errors.Is(err, palette.ErrColourRange) {
				sendError(c, 422, ERR_NOT_BURN_ADDRESS, err.Error())
				return
			}
			s.invalid(c, err.Error())
			return
		}

		c.JSON(200, gin.H{
			"pixel":  px,
			"colour": newColourJson(px.Colour()),
		})
	})

	r.GET("/history/:addr", s.limit(config.ACTION_DECODE), func(c *gin.Context) {
		if s.Store == nil {
			sendError(c, 404, ERR_NOT_FOUND, "history is disabled")
			return
		}

		addr := c.Param("addr")
		if !address.IsAddressValid(addr, s.Gen.BechPrefix()) {
			s.invalid(c, "invalid address")
			return
		}

		rec, err := s.Store.Get(addr)
		if errors.Is(err, database.ErrNotFound) {
			sendError(c, 404, ERR_NOT_FOUND, "address not found")
			return
		} else if err != nil {
			log.Err(err)
			sendError(c, 500, ERR_INTERNAL, "internal server error")
			return
		}
		c.JSON(200, rec)
	})

	r.GET("/pixel/:x/:y/history", s.limit(config.ACTION_DECODE), func(c *gin.Context) {
		if s.Store == nil {
			sendError(c, 404, ERR_NOT_FOUND, "history is disabled")
			return
		}

		coord, ok := s.parseCoord(c)
		if !ok {
			return
		}

		recs, err := s.Store.ForCoord(coord)
		if err != nil {
			log.Err(err)
			sendError(c, 500, ERR_INTERNAL, "internal server error")
			return
		}
		c.JSON(200, recs)
	})

	return r
}

func (s *Server) parseCoord(c *gin.Context) (pixel.Coord, bool) {
	x, err := util.ParseUint[uint16](c.Param("x"))
	if err != nil {
		s.invalid(c, "invalid x coordinate")
		return pixel.Coord{}, false
	}
	y, err := util.ParseUint[uint16](c.Param("y"))
	if err != nil {
		s.invalid(c, "invalid y coordinate")
		return pixel.Coord{}, false
	}
	return pixel.Coord{X: x, Y: y}, true
}

func (s *Server) handleAddress(c *gin.Context) {
	coord, ok := s.parseCoord(c)
	if !ok {
		return
	}

	id, err := util.ParseUint[uint8](c.Param("colour"))
	if err != nil {
		s.invalid(c, "invalid colour id")
		return
	}

	// the generator encodes any colour byte, reject unknown colours here
	px, err := pixel.New(coord, id)
	if err != nil {
		s.invalid(c, err.Error())
		return
	}

	addr, err := s.Gen.ForPixelColour(px.Coord, px.ColourId)
	if err != nil {
		log.Err(err)
		sendError(c, 500, ERR_INTERNAL, "internal server error")
		return
	}

	resp := gin.H{
		"address": addr,
		"pixel":   px,
		"colour":  newColourJson(px.Colour()),
	}

	if s.Store != nil {
		rec, err := s.Store.Put(addr, px)
		if err != nil {
			log.Err(err)
			sendError(c, 500, ERR_INTERNAL, "internal server error")
			return
		}
		resp["hits"] = rec.Hits
	}

	log.Netf("%s -> %s", c.ClientIP(), addr)

	c.JSON(200, resp)
}

// ListenAndServe serves the API on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("API server listening on", addr)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
