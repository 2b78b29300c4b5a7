// Package tenantsdk is the Go client for the Tally tenant service.
//
// It carries the wire types the service speaks, so the HTTP layer and its
// callers agree on one definition, and a small Client for the operations
// other services and tenantctl need:
//
//	c := tenantsdk.NewClient("http://localhost:8080", accessToken)
//	me, err := c.Me(ctx)
//	if err != nil {
//		return err
//	}
//	if me.CompanyID == nil {
//		// principal has no company yet: offer bootstrap
//	}
//
// Errors returned by the service come back as *APIError. Use the Is*
// helpers to branch on the common outcomes:
//
//	_, err := c.ListAudit(ctx, companyID, tenantsdk.AuditQuery{})
//	switch {
//	case tenantsdk.IsSubscriptionInactive(err):
//		// send the user to billing
//	case tenantsdk.IsForbidden(err):
//		// role lacks audit:read
//	}
package tenantsdk
