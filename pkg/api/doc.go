// Package api defines the request and response messages of the weekgoal.v1
// services. Messages travel as JSON; see package apiconnect for the codec,
// handlers and clients.
//
// Amounts are currency units with at most two decimals. Day indexes run from
// 0 (Monday) to 6 (Sunday). Weeks are ISO week keys such as "2024-W24".
package api
