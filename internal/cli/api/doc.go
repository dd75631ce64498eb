// Package api binds the ota commands to the endpoints of the four fleet
// services: the device registry, the TUF repository server, the director
// and the campaigner.
//
// Every call goes through a Doer, normally a *connection.Manager, and
// returns an output.Result. Listing endpoints with a useful tabular view
// return a TableResult built from the response with gjson.
package api
