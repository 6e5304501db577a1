// README: Shared identifier type for bookings and drivers.
package types

type ID string
