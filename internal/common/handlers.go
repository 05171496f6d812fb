package common

import (
	"net/http"
	"time"

	v0common "canteen-api/internal/v0/common"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	Uptime string `json:"uptime"`
}

// Uptime Logic
var startTime time.Time

func init() {
	startTime = time.Now()
}

func uptime() time.Duration {
	return time.Since(startTime)
}

func Status(c *gin.Context) {
	data := StatusResponse{
		Uptime: uptime().Truncate(time.Second).String(),
	}
	c.JSON(http.StatusOK, v0common.CreateSuccessResponse(data))
}

func RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/status", Status)
}

/*
EZEATZ API is the backend for the EZEATZ admin console, the college canteen management dashboard. Menu catalogue, daily specials scheduling and stock reminders for canteen operators.
EZEATZ API Copyright (C) 2025 EZEATZ
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
