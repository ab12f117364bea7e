package sqlinline

const QInsertFundraiser = `--sql 76121753-65fc-412e-ad70-c6c4daf08525
insert into fundraisers(id, title, description, goal, image, is_open, deadline, owner_id, created_at)
values ($1::uuid, $2::text, $3::text, $4::bigint, $5::text, $6::boolean, $7::timestamptz, $8::uuid, $9::timestamptz);
`

const QSelectFundraiserByID = `--sql d9b8b86c-a363-4e21-b003-6e473d68689c
select id, title, description, goal, image, is_open, deadline, owner_id, created_at
from fundraisers
where id = $1::uuid;
`

// QSelectFundraiserForUpdate locks the fundraiser row for the duration of the
// admission transaction so concurrent admissions are strictly ordered.
const QSelectFundraiserForUpdate = `--sql 0f6fecd4-fcf0-402d-943a-98a73814d208
select id, title, description, goal, image, is_open, deadline, owner_id, created_at
from fundraisers
where id = $1::uuid
for update;
`

// QListFundraisersBase is extended with "and ..." clauses by the repository.
// The marker line must stay first.
const QListFundraisersBase = `--sql 58336024-fd72-4fc0-8609-168d12be05c7
select id, title, description, goal, image, is_open, deadline, owner_id, created_at
from fundraisers
where true`

const QUpdateFundraiser = `--sql e4b2dda5-1ec3-4445-8236-b770e031c5e7
update fundraisers
set title = $2::text,
    description = $3::text,
    goal = $4::bigint,
    image = $5::text,
    is_open = $6::boolean,
    deadline = $7::timestamptz
where id = $1::uuid;
`

// QCloseFundraiser is the only path that persists the open-to-closed refresh
// transition. The is_open guard keeps it monotonic and idempotent.
const QCloseFundraiser = `--sql 5b8867ca-b564-41f1-ac02-d0669713bfcb
update fundraisers
set is_open = false
where id = $1::uuid
  and is_open;
`

const QSumPledges = `--sql 9af0a807-cf97-4ef2-ab19-a8fabb8c1ac2
select coalesce(sum(amount), 0)
from pledges
where fundraiser_id = $1::uuid;
`

const QDeleteFundraiser = `--sql 3d920924-76dc-436d-b8ba-d4ac14d940e4
delete from fundraisers
where id = $1::uuid;
`

const QDeletePledgesByFundraiser = `--sql d5ac838c-7bde-43d8-ae8c-ce429731cf08
delete from pledges
where fundraiser_id = $1::uuid;
`

const QDeleteCommentsByFundraiser = `--sql 4b1579d1-7972-4149-8092-6c22a46b45b4
delete from comments
where fundraiser_id = $1::uuid;
`
